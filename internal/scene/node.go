package scene

import (
	"math"
	"unicode/utf8"

	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
)

const (
	DefaultWidth  = 80.0
	DefaultHeight = 40.0
	MinHeight     = 20.0
	BaseFontSize  = 12.0
	DefaultLabel  = "Idea"

	labelAdvance = 8.0
	labelPadding = 12.0
)

// Node is a bubble. Pos is the top-left corner in canvas space. A zero
// Width, Height or FontSize means the value is derived from the content.
type Node struct {
	ID       string
	Label    string
	Color    palette.Key
	Pos      geom.Point
	Width    float64
	Height   float64
	FontSize float64
}

func (n Node) FontScale() float64 {
	if n.FontSize <= 0 {
		return 1
	}
	return n.FontSize / BaseFontSize
}

func (n Node) EffectiveFontSize() float64 {
	if n.FontSize <= 0 {
		return BaseFontSize
	}
	return n.FontSize
}

// Size resolves the rendered size of the node.
func (n Node) Size() geom.Size {
	w, h := n.Width, n.Height
	if w <= 0 {
		w = math.Max(DefaultWidth, float64(utf8.RuneCountInString(n.Label))*labelAdvance*n.FontScale()+2*labelPadding)
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return geom.Size{W: w, H: h}
}

func (n Node) Bounds() geom.Rect {
	s := n.Size()
	return geom.Rect{X: n.Pos.X, Y: n.Pos.Y, W: s.W, H: s.H}
}

// Anchor is the point edges attach to.
func (n Node) Anchor() geom.Point {
	return n.Bounds().Center()
}

func (n Node) validate() error {
	if !geom.Finite(n.Pos) {
		return ErrInvalidGeometry
	}
	if !geom.FiniteSize(geom.Size{W: n.Width, H: n.Height}) || n.Width < 0 || n.Height < 0 {
		return ErrInvalidGeometry
	}
	if math.IsNaN(n.FontSize) || math.IsInf(n.FontSize, 0) || n.FontSize < 0 {
		return ErrInvalidGeometry
	}
	return nil
}
