package geom

import "math"

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

type Size struct {
	W, H float64
}

// ViewTransform maps canvas space to screen space: screen = canvas*Zoom + Pan + origin.
type ViewTransform struct {
	Zoom float64
	PanX float64
	PanY float64
}

func Identity() ViewTransform {
	return ViewTransform{Zoom: 1}
}

// ToCanvas converts a screen point to canvas space. origin is the screen
// position of the canvas element's top-left corner.
func ToCanvas(screen Point, t ViewTransform, origin Point) Point {
	return Point{
		X: (screen.X - origin.X - t.PanX) / t.Zoom,
		Y: (screen.Y - origin.Y - t.PanY) / t.Zoom,
	}
}

// ToScreen is the inverse of ToCanvas.
func ToScreen(canvas Point, t ViewTransform, origin Point) Point {
	return Point{
		X: canvas.X*t.Zoom + t.PanX + origin.X,
		Y: canvas.Y*t.Zoom + t.PanY + origin.Y,
	}
}

func (t ViewTransform) Panned(dx, dy float64) ViewTransform {
	t.PanX += dx
	t.PanY += dy
	return t
}

func (t ViewTransform) ClampZoom(min, max float64) ViewTransform {
	if t.Zoom < min {
		t.Zoom = min
	}
	if t.Zoom > max {
		t.Zoom = max
	}
	return t
}

// ZoomedAt scales the view by factor while keeping the canvas point under
// screen fixed on screen. The resulting zoom is clamped to [min, max].
func (t ViewTransform) ZoomedAt(screen, origin Point, factor, min, max float64) ViewTransform {
	anchor := ToCanvas(screen, t, origin)
	next := ViewTransform{Zoom: t.Zoom * factor}.ClampZoom(min, max)
	next.PanX = screen.X - origin.X - anchor.X*next.Zoom
	next.PanY = screen.Y - origin.Y - anchor.Y*next.Zoom
	return next
}

// Valid reports whether the transform can be inverted.
func (t ViewTransform) Valid() bool {
	return finite(t.Zoom) && t.Zoom > 0 && finite(t.PanX) && finite(t.PanY)
}

func Finite(p Point) bool {
	return finite(p.X) && finite(p.Y)
}

func FiniteSize(s Size) bool {
	return finite(s.W) && finite(s.H)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
