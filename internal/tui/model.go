// Package tui is the terminal editor: a bubbletea program driving a
// mind map session with the mouse and keyboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bubblemap/internal/config"
	"bubblemap/internal/geom"
	"bubblemap/internal/gesture"
	"bubblemap/internal/mindmap"
	"bubblemap/internal/palette"
	"bubblemap/internal/render"
)

type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmReset
	ConfirmQuit
)

type Model struct {
	session *mindmap.Session
	canvas  *render.Terminal
	cfg     *config.Config
	logger  *zap.Logger

	width  int
	height int

	help          bool
	helpScroll    int
	confirmAction ConfirmAction

	// pointer state; terminals report releases without a button, so the
	// gesture's button is kept apart from taps made while it is held
	pressed   gesture.Button
	taps      []gesture.Button
	lastPress pressRecord
	double    bool

	errorMessage   string
	successMessage string

	now            func() time.Time
	readClipboard  func() (string, error)
	writeClipboard func(string) error
}

type pressRecord struct {
	x, y int
	at   time.Time
}

type Option func(*Model)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

func WithClipboard(read func() (string, error), write func(string) error) Option {
	return func(m *Model) {
		m.readClipboard = read
		m.writeClipboard = write
	}
}

// New builds the editor. canvas must be the renderer the session's scene
// and controller draw into.
func New(session *mindmap.Session, canvas *render.Terminal, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		session:        session,
		canvas:         canvas,
		cfg:            cfg,
		logger:         zap.NewNop(),
		width:          80,
		height:         24,
		now:            time.Now,
		readClipboard:  readClipboardText,
		writeClipboard: writeClipboardText,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the editor on the alternate screen with mouse reporting.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.help || m.confirmAction != ConfirmNone {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) canvasSize() (int, int) {
	width := m.width
	if width < 1 {
		width = 1
	}
	height := m.height - 1 // status line
	if height < 1 {
		height = 1
	}
	return width, height
}

// centre is the screen point in the middle of the canvas area, in pixels.
func (m *Model) centre() geom.Point {
	w, h := m.canvasSize()
	return geom.Pt(float64(w)*render.CellWidth/2, float64(h)*render.CellHeight/2)
}

// Report shows err on the status line.
func (m *Model) Report(err error) {
	m.report(err)
}

func (m *Model) report(err error) {
	if err != nil {
		m.errorMessage = err.Error()
		m.successMessage = ""
		m.logger.Error("action failed", zap.Error(err))
	}
}

func (m *Model) succeed(format string, args ...any) {
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf(format, args...)
}

func (m *Model) save() {
	m.report(m.session.Controller.Blur())
	if err := m.session.Save(context.Background()); err != nil {
		m.report(err)
		return
	}
	m.succeed("Saved!")
}

func (m *Model) load() {
	ok, err := m.session.Load(context.Background())
	if err != nil {
		m.report(err)
		return
	}
	if !ok {
		m.succeed("Nothing saved yet")
		return
	}
	m.succeed("Loaded %d bubbles", m.session.Model.Len())
}

func (m *Model) reset() {
	m.session.Reset()
	m.succeed("Cleared")
}

func (m *Model) View() string {
	if m.help {
		return m.helpView()
	}

	width, height := m.canvasSize()
	var result strings.Builder
	for _, line := range m.canvas.Lines(width, height) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m *Model) statusLine() string {
	if m.confirmAction != ConfirmNone {
		var message string
		switch m.confirmAction {
		case ConfirmReset:
			message = "Clear the map? Unsaved changes will be lost. (y/n)"
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	ctrl := m.session.Controller
	status := fmt.Sprintf("Mode: %s | Color: %s", strings.ToUpper(ctrl.Mode().String()), ctrl.SelectedColor())
	if ctrl.Mode() == gesture.ConnectingFrom {
		status += fmt.Sprintf(" | Line: %s", ctrl.Style())
	}
	if latches := latchString(ctrl.Latched()); latches != "" {
		status += " | " + latches
	}
	status += fmt.Sprintf(" | Zoom: %d%%", int(m.session.Model.View().Zoom*100+0.5))
	if m.session.Dirty() {
		status += " | [Save]"
	} else {
		status += " | [Saved!]"
	}

	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func latchString(l gesture.Mods) string {
	var parts []string
	if l.Has(gesture.ModSubtree) {
		parts = append(parts, "SUBTREE")
	}
	if l.Has(gesture.ModShift) {
		parts = append(parts, "RESIZE")
	}
	if l.Has(gesture.ModCtrl) {
		parts = append(parts, "CONNECT")
	}
	return strings.Join(parts, "+")
}

func (m *Model) toggleTheme() {
	next := palette.ThemeNamed("dark")
	if m.canvas.Theme().Name == next.Name {
		next = palette.ThemeNamed("default")
	}
	m.canvas.SetTheme(next)
	m.session.SetTheme(next)
	m.cfg.UI.Theme = next.Name
	m.succeed("Theme: %s", next.Name)
}
