package gesture

import "bubblemap/internal/geom"

type Kind int

const (
	Down Kind = iota
	Move
	Up
)

type Button int

const (
	Primary Button = iota
	Secondary
	Tertiary
)

type Mods uint8

const (
	ModCtrl Mods = 1 << iota
	ModShift
	// ModSubtree is the "move the whole subtree" modifier (space in the browser).
	ModSubtree
)

func (m Mods) Has(f Mods) bool {
	return m&f != 0
}

type PointerEvent struct {
	Kind   Kind
	Button Button
	Screen geom.Point
	Mods   Mods
}

type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyLeft
	KeyRight
	KeyShift
	KeyCtrl
	KeySpace
	KeyTab
)

type KeyEvent struct {
	Key  Key
	Rune rune
}

type WheelEvent struct {
	Screen geom.Point
	DX, DY float64
	Mods   Mods
}

type Mode int

const (
	Idle Mode = iota
	Panning
	DraggingNode
	ResizingNode
	ConnectingFrom
	EditingLabel
)

func (m Mode) String() string {
	switch m {
	case Panning:
		return "panning"
	case DraggingNode:
		return "dragging"
	case ResizingNode:
		return "resizing"
	case ConnectingFrom:
		return "connecting"
	case EditingLabel:
		return "editing"
	}
	return "idle"
}
