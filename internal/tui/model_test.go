package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubblemap/internal/config"
	"bubblemap/internal/geom"
	"bubblemap/internal/gesture"
	"bubblemap/internal/mindmap"
	"bubblemap/internal/palette"
	"bubblemap/internal/render"
	"bubblemap/internal/scene"
	"bubblemap/internal/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) read() (string, error) {
	return c.text, c.err
}

func (c *fakeClipboard) write(s string) error {
	c.text = s
	return c.err
}

type harness struct {
	*Model
	clock *fakeClock
	clip  *fakeClipboard
	cfg   *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	term := render.NewTerminal(palette.ThemeNamed("default"))
	model := scene.New(scene.WithRenderer(term))
	ctrl := gesture.New(model, gesture.WithPreview(term))
	session := mindmap.New(model, ctrl, store.NewMemory())

	cfg := config.Default()
	cfg.Store.SaveDirectory = t.TempDir()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	clip := &fakeClipboard{}

	m := New(session, term, cfg, WithClock(clock.now), WithClipboard(clip.read, clip.write))
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 16})
	return &harness{Model: m, clock: clock, clip: clip, cfg: cfg}
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = h.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(typ tea.MouseEventType, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: typ}
}

func (h *harness) click(typ tea.MouseEventType, x, y int) {
	h.send(mouse(typ, x, y), mouse(tea.MouseRelease, x, y))
}

func (h *harness) addNode(t *testing.T, label string, x, y float64) string {
	t.Helper()
	id, err := h.session.Model.AddNode(label, palette.Default, geom.Pt(x, y))
	require.NoError(t, err)
	return id
}

func TestRightClickCreatesAndEdits(t *testing.T) {
	h := newHarness(t)
	h.click(tea.MouseRight, 5, 3)

	require.Equal(t, 1, h.session.Model.Len())
	assert.Equal(t, gesture.EditingLabel, h.session.Controller.Mode())
	n := h.session.Model.Nodes()[0]
	assert.Equal(t, geom.Pt(44-40, 56-20), n.Pos)

	h.send(runes("Hi"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, gesture.Idle, h.session.Controller.Mode())
	assert.Equal(t, "Hi", h.session.Model.Nodes()[0].Label)
}

func TestEditingSwallowsShortcuts(t *testing.T) {
	h := newHarness(t)
	h.click(tea.MouseRight, 5, 3)

	cmd := h.send(runes("q"), runes("?"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, h.help)
	assert.Equal(t, "q?", h.session.Model.Nodes()[0].Label)
}

func TestDoubleClickEdits(t *testing.T) {
	h := newHarness(t)
	id := h.addNode(t, "Idea", 0, 0)

	h.click(tea.MouseLeft, 2, 1)
	h.clock.advance(100 * time.Millisecond)
	h.click(tea.MouseLeft, 2, 1)

	assert.Equal(t, gesture.EditingLabel, h.session.Controller.Mode())
	assert.Equal(t, id, h.session.Controller.Target())
}

func TestSlowClicksDoNotEdit(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "Idea", 0, 0)

	h.click(tea.MouseLeft, 2, 1)
	h.clock.advance(500 * time.Millisecond)
	h.click(tea.MouseLeft, 2, 1)
	assert.Equal(t, gesture.Idle, h.session.Controller.Mode())

	h.click(tea.MouseLeft, 3, 1)
	assert.Equal(t, gesture.Idle, h.session.Controller.Mode())
}

func TestRightDragConnects(t *testing.T) {
	h := newHarness(t)
	a := h.addNode(t, "A", 0, 0)
	b := h.addNode(t, "B", 200, 0)

	h.send(mouse(tea.MouseRight, 2, 1))
	assert.Contains(t, h.statusLine(), "Line: solid")
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, h.statusLine(), "Line: dashed")
	h.send(mouse(tea.MouseMotion, 27, 1), mouse(tea.MouseRelease, 27, 1))

	e, ok := h.session.Model.Edge(a, b)
	require.True(t, ok)
	assert.Equal(t, a, e.Source)
	assert.Equal(t, scene.Dashed, e.Style)
}

func TestLeftTapWhileConnecting(t *testing.T) {
	h := newHarness(t)
	a := h.addNode(t, "A", 0, 0)
	b := h.addNode(t, "B", 200, 0)

	h.send(mouse(tea.MouseRight, 2, 1))
	h.click(tea.MouseLeft, 2, 1)
	assert.Equal(t, gesture.ConnectingFrom, h.session.Controller.Mode())
	assert.Contains(t, h.statusLine(), "Line: dashed")

	h.send(mouse(tea.MouseMotion, 27, 1), mouse(tea.MouseRelease, 27, 1))
	assert.Equal(t, gesture.Idle, h.session.Controller.Mode())
	e, ok := h.session.Model.Edge(a, b)
	require.True(t, ok)
	assert.Equal(t, scene.Dashed, e.Style)
}

func TestStickyConnectModifier(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "A", 0, 0)

	h.send(runes("c"))
	assert.Contains(t, h.statusLine(), "CONNECT")
	h.send(mouse(tea.MouseLeft, 2, 1))
	assert.Equal(t, gesture.ConnectingFrom, h.session.Controller.Mode())

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, gesture.Idle, h.session.Controller.Mode())
	h.send(runes("c"))
	assert.NotContains(t, h.statusLine(), "CONNECT")
}

func TestAltRightClickDeletes(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "A", 0, 0)

	h.send(tea.MouseMsg{X: 2, Y: 1, Type: tea.MouseRight, Alt: true})
	assert.Zero(t, h.session.Model.Len())
}

func TestLeftDragMovesNode(t *testing.T) {
	h := newHarness(t)
	id := h.addNode(t, "A", 0, 0)

	h.send(mouse(tea.MouseLeft, 2, 1), mouse(tea.MouseMotion, 4, 2), mouse(tea.MouseRelease, 4, 2))
	n, ok := h.session.Model.Node(id)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(16, 16), n.Pos)
}

func TestPanAndZoomKeys(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 8.0, h.session.Model.View().PanX)
	h.send(runes("L"))
	assert.Equal(t, -8.0, h.session.Model.View().PanX)
	h.send(runes("j"))
	assert.Equal(t, -16.0, h.session.Model.View().PanY)

	h.send(mouse(tea.MouseWheelDown, 10, 5))
	assert.Equal(t, -16.0-3*render.CellHeight, h.session.Model.View().PanY)

	h.send(runes("+"))
	assert.InDelta(t, 1.1, h.session.Model.View().Zoom, 1e-9)
	assert.Contains(t, h.statusLine(), "Zoom: 110%")
	assert.False(t, h.session.Dirty())
}

func TestColorKeys(t *testing.T) {
	h := newHarness(t)
	h.send(runes("3"))
	assert.Equal(t, palette.Blue, h.session.Controller.SelectedColor())
	assert.Contains(t, h.statusLine(), "Color: blue")
}

func TestSaveAndDirtyMarker(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "A", 0, 0)
	assert.Contains(t, h.statusLine(), "[Save]")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, h.session.Dirty())
	assert.Contains(t, h.statusLine(), "[Saved!]")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Zero(t, h.session.Model.Len(), "a clean map clears without asking")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, 1, h.session.Model.Len())
}

func TestResetConfirmation(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "A", 0, 0)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Contains(t, h.View(), "Clear the map?")
	h.send(runes("n"))
	assert.Equal(t, 1, h.session.Model.Len())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlN}, runes("y"))
	assert.Zero(t, h.session.Model.Len())
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	h.addNode(t, "A", 0, 0)
	assert.Nil(t, h.send(runes("q")))
	assert.Equal(t, ConfirmQuit, h.confirmAction)
	cmd = h.send(runes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClipboardRoundTrip(t *testing.T) {
	h := newHarness(t)
	a := h.addNode(t, "A", 0, 0)
	b := h.addNode(t, "B", 200, 0)
	require.True(t, h.session.Model.AddEdge(a, b, scene.Solid))

	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Contains(t, h.clip.text, `"bubbles"`)

	other := newHarness(t)
	other.clip.text = h.clip.text
	other.send(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Equal(t, 2, other.session.Model.Len())
	assert.Equal(t, 1, other.session.Model.EdgeCount())
	assert.Contains(t, other.statusLine(), "Imported 2 bubbles")
}

func TestClipboardErrors(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errors.New("no clipboard")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Contains(t, h.statusLine(), "ERROR: read clipboard: no clipboard")

	h.clip.err = nil
	h.clip.text = "{"
	h.send(tea.KeyMsg{Type: tea.KeyCtrlV})
	assert.Contains(t, h.statusLine(), "ERROR: malformed document")
}

func TestExports(t *testing.T) {
	h := newHarness(t)
	h.addNode(t, "Idea", 0, 0)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	data, err := os.ReadFile(filepath.Join(h.cfg.Store.SaveDirectory, txtName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "│  Idea  │")

	h.send(tea.KeyMsg{Type: tea.KeyCtrlE})
	_, err = os.Stat(filepath.Join(h.cfg.Store.SaveDirectory, pngName))
	assert.NoError(t, err)
}

func TestHelpAndTheme(t *testing.T) {
	h := newHarness(t)
	h.send(runes("?"))
	assert.Contains(t, h.View(), "bubblemap Help")
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, h.View(), "bubblemap Help")

	h.send(runes("T"))
	assert.Equal(t, "dark", h.canvas.Theme().Name)
	assert.Equal(t, "dark", h.session.Theme().Name)
	h.send(runes("T"))
	assert.Equal(t, "default", h.cfg.UI.Theme)
}
