package render

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"bubblemap/internal/geom"
	"bubblemap/internal/gesture"
	"bubblemap/internal/palette"
	"bubblemap/internal/scene"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

type cellStyle struct {
	fg, bg string
}

type cell struct {
	r     rune
	style cellStyle
}

// Terminal keeps the scene and rasterises it into terminal lines on demand.
// It serves both as the model's renderer and the gesture preview.
type Terminal struct {
	retained
	theme   palette.Theme
	preview gesture.Preview
	draft   gesture.Draft
	styles  map[cellStyle]lipgloss.Style
}

func NewTerminal(theme palette.Theme) *Terminal {
	return &Terminal{
		retained: newRetained(),
		theme:    theme,
		styles:   make(map[cellStyle]lipgloss.Style),
	}
}

func (t *Terminal) SetTheme(theme palette.Theme) {
	t.theme = theme
}

func (t *Terminal) Theme() palette.Theme {
	return t.theme
}

func (t *Terminal) DrawPreview(p gesture.Preview) {
	t.preview = p
}

func (t *Terminal) ClearPreview() {
	t.preview = gesture.Preview{}
}

func (t *Terminal) DrawDraft(d gesture.Draft) {
	t.draft = d
}

func (t *Terminal) ClearDraft() {
	t.draft = gesture.Draft{}
}

// Lines renders the visible part of the canvas with colors.
func (t *Terminal) Lines(width, height int) []string {
	grid := t.raster(width, height)
	result := make([]string, len(grid))
	for i, row := range grid {
		var line strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].style == row[start].style {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, c := range row[start:j] {
				run = append(run, c.r)
			}
			line.WriteString(t.style(row[start].style).Render(string(run)))
			start = j
		}
		result[i] = line.String()
	}
	return result
}

// Plain renders the visible part of the canvas without colors.
func (t *Terminal) Plain(width, height int) []string {
	grid := t.raster(width, height)
	result := make([]string, len(grid))
	for i, row := range grid {
		runes := make([]rune, len(row))
		for j, c := range row {
			runes[j] = c.r
		}
		result[i] = string(runes)
	}
	return result
}

func (t *Terminal) style(s cellStyle) lipgloss.Style {
	if st, ok := t.styles[s]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	t.styles[s] = st
	return st
}

func (t *Terminal) raster(width, height int) [][]cell {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	// edges behind bubbles
	t.eachEdge(func(e drawnEdge) {
		scheme := e.color.Scheme()
		t.drawCurve(grid, e.path, e.edge.Style, cellStyle{fg: scheme.Connection})
	})
	if t.preview.Active {
		path := geom.CurveBetween(t.preview.From, t.preview.To)
		t.drawCurve(grid, path, t.preview.Style, cellStyle{fg: t.theme.Preview})
	}
	t.eachNode(func(n scene.Node) {
		label := n.Label
		cursor := -1
		if t.draft.Active && t.draft.NodeID == n.ID {
			label, cursor = t.draft.Text, t.draft.Cursor
		}
		t.drawBubble(grid, n, label, cursor)
	})
	return grid
}

func (t *Terminal) toCell(p geom.Point) (int, int) {
	s := geom.ToScreen(p, t.view, geom.Point{})
	return int(math.Floor(s.X / CellWidth)), int(math.Floor(s.Y / CellHeight))
}

func put(grid [][]cell, x, y int, r rune, s cellStyle) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = cell{r: r, style: s}
}

// Upper bound on samples taken along one curve.
const maxCurveSamples = 4096

// Cells further than this outside the grid are pinned to it, so huge
// coordinates never overflow or drive long loops.
const cellMargin = 1 << 20

// drawCurve samples the path densely enough to touch every cell it crosses.
// Dashed curves alternate two cells' worth of arc on and off.
func (t *Terminal) drawCurve(grid [][]cell, path geom.Cubic, style scene.LineStyle, s cellStyle) {
	if len(grid) == 0 {
		return
	}
	lo, hi := path.Bounds()
	lo = geom.ToScreen(lo, t.view, geom.Point{})
	hi = geom.ToScreen(hi, t.view, geom.Point{})
	w := float64(len(grid[0])) * CellWidth
	h := float64(len(grid)) * CellHeight
	if hi.X < 0 || hi.Y < 0 || lo.X > w || lo.Y > h {
		return
	}

	from := geom.ToScreen(path.From, t.view, geom.Point{})
	to := geom.ToScreen(path.To, t.view, geom.Point{})
	steps := maxCurveSamples
	if d := from.Distance(to)/2 + 8; d < maxCurveSamples {
		steps = int(d)
	}

	prev := path.From
	arc := 0.0
	for i := 0; i <= steps; i++ {
		p := path.At(float64(i) / float64(steps))
		arc += p.Distance(prev) * t.view.Zoom
		prev = p
		if style == scene.Dashed && math.Mod(arc, 4*CellWidth) >= 2*CellWidth {
			continue
		}
		x, y := t.toCell(p)
		put(grid, x, y, '·', s)
	}
}

// pin converts a cell coordinate to int, held within cellMargin of [0, n).
func pin(v float64, n int) int {
	return int(math.Max(-cellMargin, math.Min(v, float64(n+cellMargin))))
}

func (t *Terminal) drawBubble(grid [][]cell, n scene.Node, label string, cursor int) {
	if len(grid) == 0 {
		return
	}
	width, height := len(grid[0]), len(grid)
	b := n.Bounds()
	near := geom.ToScreen(b.Min(), t.view, geom.Point{})
	far := geom.ToScreen(b.Max(), t.view, geom.Point{})
	x0 := pin(math.Floor(near.X/CellWidth), width)
	y0 := pin(math.Floor(near.Y/CellHeight), height)
	x1 := pin(math.Ceil(far.X/CellWidth)-1, width)
	y1 := pin(math.Ceil(far.Y/CellHeight)-1, height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}

	scheme := n.Color.Scheme()
	fill := cellStyle{fg: scheme.Text, bg: scheme.BG}
	border := cellStyle{fg: scheme.Border, bg: scheme.BG}
	boxed := y1-y0 >= 2 && x1-x0 >= 2

	for y := max(y0, 0); y <= min(y1, height-1); y++ {
		for x := max(x0, 0); x <= min(x1, width-1); x++ {
			r := ' '
			s := fill
			if boxed {
				r, s = borderRune(x, y, x0, y0, x1, y1), border
				if r == ' ' {
					s = fill
				}
			}
			put(grid, x, y, r, s)
		}
	}

	// label centred on the middle row, inside the border when there is one
	left, right := x0, x1
	if boxed {
		left, right = x0+1, x1-1
	}
	room := right - left + 1
	text := []rune(label)
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor >= 0 {
		text = append(text[:cursor:cursor], append([]rune{'▏'}, text[cursor:]...)...)
	}
	if len(text) > room {
		if cursor >= room {
			text = text[cursor-room+1:]
		}
		text = text[:room]
	}
	row := y0 + (y1-y0)/2
	if row < 0 || row >= height {
		return
	}
	start := left + (room-utf8.RuneCountInString(string(text)))/2
	for i, r := range text {
		put(grid, start+i, row, r, fill)
	}
}

func borderRune(x, y, x0, y0, x1, y1 int) rune {
	switch {
	case x == x0 && y == y0:
		return '╭'
	case x == x1 && y == y0:
		return '╮'
	case x == x0 && y == y1:
		return '╰'
	case x == x1 && y == y1:
		return '╯'
	case y == y0 || y == y1:
		return '─'
	case x == x0 || x == x1:
		return '│'
	}
	return ' '
}
