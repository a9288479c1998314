package scene

import "bubblemap/internal/palette"

type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
)

func (s LineStyle) String() string {
	if s == Dashed {
		return "dashed"
	}
	return "solid"
}

func (s LineStyle) Toggle() LineStyle {
	if s == Dashed {
		return Solid
	}
	return Dashed
}

// ParseLineStyle maps a wire name to a style. Unknown names read as solid.
func ParseLineStyle(name string) (LineStyle, bool) {
	switch name {
	case "solid":
		return Solid, true
	case "dashed":
		return Dashed, true
	}
	return Solid, false
}

// Edge is a directed link. Override, when set, pins the rendered color;
// otherwise the color follows the target node.
type Edge struct {
	Source   string
	Target   string
	Style    LineStyle
	Override *palette.Key
}

func (e Edge) Key() EdgeKey {
	return KeyOf(e.Source, e.Target)
}

func (e Edge) touches(id string) bool {
	return e.Source == id || e.Target == id
}

// EdgeKey identifies the unordered node pair an edge connects.
type EdgeKey struct {
	A, B string
}

func KeyOf(a, b string) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

func (k EdgeKey) String() string {
	return k.A + "~" + k.B
}
