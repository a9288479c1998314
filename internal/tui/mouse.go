package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bubblemap/internal/geom"
	"bubblemap/internal/gesture"
	"bubblemap/internal/render"
)

const (
	doublePressWindow = 400 * time.Millisecond
	wheelStep         = 3 * render.CellHeight
)

// cellCentre maps a terminal cell to the pixel at its centre.
func cellCentre(x, y int) geom.Point {
	return geom.Pt(
		float64(x)*render.CellWidth+render.CellWidth/2,
		float64(y)*render.CellHeight+render.CellHeight/2,
	)
}

func mouseMods(msg tea.MouseMsg) gesture.Mods {
	var mods gesture.Mods
	if msg.Ctrl || msg.Alt {
		mods |= gesture.ModCtrl
	}
	return mods
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ctrl := m.session.Controller
	screen := cellCentre(msg.X, msg.Y)
	mods := mouseMods(msg)

	switch msg.Type {
	case tea.MouseLeft, tea.MouseRight, tea.MouseMiddle:
		button := gesture.Primary
		switch msg.Type {
		case tea.MouseRight:
			button = gesture.Secondary
		case tea.MouseMiddle:
			button = gesture.Tertiary
		}
		if mode := ctrl.Mode(); mode == gesture.Idle || mode == gesture.EditingLabel {
			m.pressed, m.taps = button, nil
			m.trackPress(button, msg.X, msg.Y)
		} else {
			m.taps = append(m.taps, button)
		}
		m.report(ctrl.Pointer(gesture.PointerEvent{Kind: gesture.Down, Button: button, Screen: screen, Mods: mods}))

	case tea.MouseMotion:
		m.report(ctrl.Pointer(gesture.PointerEvent{Kind: gesture.Move, Button: m.pressed, Screen: screen, Mods: mods}))

	case tea.MouseRelease:
		// the most recent tap lets go first
		button := m.pressed
		if n := len(m.taps); n > 0 {
			button, m.taps = m.taps[n-1], m.taps[:n-1]
		}
		ev := gesture.PointerEvent{Kind: gesture.Up, Button: button, Screen: screen, Mods: mods}
		m.report(ctrl.Pointer(ev))
		if m.double {
			m.double = false
			m.report(ctrl.DoublePress(ev))
		}

	case tea.MouseWheelUp:
		m.report(ctrl.Wheel(gesture.WheelEvent{Screen: screen, DY: -wheelStep, Mods: mods}))
	case tea.MouseWheelDown:
		m.report(ctrl.Wheel(gesture.WheelEvent{Screen: screen, DY: wheelStep, Mods: mods}))
	}
}

// trackPress flags a second press on the same cell within the window.
func (m *Model) trackPress(button gesture.Button, x, y int) {
	now := m.now()
	last := m.lastPress
	if button == gesture.Primary && last.x == x && last.y == y && !last.at.IsZero() && now.Sub(last.at) <= doublePressWindow {
		m.double = true
		m.lastPress = pressRecord{}
		return
	}
	m.double = false
	if button == gesture.Primary {
		m.lastPress = pressRecord{x: x, y: y, at: now}
	} else {
		m.lastPress = pressRecord{}
	}
}
