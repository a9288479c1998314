package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bubblemap/internal/gesture"
	"bubblemap/internal/render"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		switch msg.String() {
		case "esc", "q", "?":
			m.help = false
			m.helpScroll = 0
		case "j", "down":
			if m.helpScroll < len(helpLines)-1 {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return m, nil
	}

	if m.confirmAction != ConfirmNone {
		action := m.confirmAction
		switch msg.String() {
		case "y", "Y":
			m.confirmAction = ConfirmNone
			switch action {
			case ConfirmReset:
				m.reset()
			case ConfirmQuit:
				return m, tea.Quit
			}
		case "n", "N", "esc":
			m.confirmAction = ConfirmNone
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		m.save()
		return m, nil
	case "ctrl+o":
		m.load()
		return m, nil
	case "ctrl+n":
		if m.session.Dirty() && m.cfg.UI.Confirmations {
			m.confirmAction = ConfirmReset
			return m, nil
		}
		m.reset()
		return m, nil
	case "ctrl+e":
		m.exportPNG()
		return m, nil
	case "ctrl+t":
		m.exportVisualTXT()
		return m, nil
	case "ctrl+y":
		m.copyJSON()
		return m, nil
	case "ctrl+v":
		m.pasteJSON()
		return m, nil
	}

	if m.session.Controller.Mode() == gesture.EditingLabel {
		m.editKey(msg)
		return m, nil
	}

	ctrl := m.session.Controller
	key := msg.String()
	switch key {
	case "q":
		if m.session.Dirty() && m.cfg.UI.Confirmations {
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.report(ctrl.Key(gesture.KeyEvent{Key: gesture.KeyEscape}))
		m.errorMessage = ""
		m.successMessage = ""
	case "tab":
		m.report(ctrl.Key(gesture.KeyEvent{Key: gesture.KeyTab}))
	case " ":
		m.report(ctrl.Key(gesture.KeyEvent{Key: gesture.KeySpace}))
	case "r":
		ctrl.ToggleLatch(gesture.ModShift)
	case "c":
		ctrl.ToggleLatch(gesture.ModCtrl)
	case "+", "=":
		m.report(ctrl.Zoom(m.centre(), true))
	case "-", "_":
		m.report(ctrl.Zoom(m.centre(), false))
	case "T":
		m.toggleTheme()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.report(ctrl.Key(gesture.KeyEvent{Key: gesture.KeyRune, Rune: rune(key[0])}))
	default:
		m.handlePan(key)
	}
	return m, nil
}

// editKey forwards a key to the label editor.
func (m *Model) editKey(msg tea.KeyMsg) {
	ctrl := m.session.Controller
	var ev gesture.KeyEvent
	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = gesture.KeyEnter
	case tea.KeyEsc:
		ev.Key = gesture.KeyEscape
	case tea.KeyBackspace:
		ev.Key = gesture.KeyBackspace
	case tea.KeyLeft:
		ev.Key = gesture.KeyLeft
	case tea.KeyRight:
		ev.Key = gesture.KeyRight
	case tea.KeySpace:
		ev.Key = gesture.KeySpace
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' {
				continue
			}
			m.report(ctrl.Key(gesture.KeyEvent{Key: gesture.KeyRune, Rune: r}))
		}
		return
	default:
		return
	}
	m.report(ctrl.Key(ev))
}

// handlePan moves the view one cell per key press, two with shift.
func (m *Model) handlePan(key string) {
	speed := 1.0
	if strings.HasPrefix(key, "shift+") || (len(key) == 1 && strings.ContainsAny(key, "HJKL")) {
		speed = 2
	}
	dx, dy := 0.0, 0.0
	switch key {
	case "h", "left", "H", "shift+left":
		dx = render.CellWidth
	case "l", "right", "L", "shift+right":
		dx = -render.CellWidth
	case "k", "up", "K", "shift+up":
		dy = render.CellHeight
	case "j", "down", "J", "shift+down":
		dy = -render.CellHeight
	default:
		return
	}
	m.report(m.session.Model.Pan(dx*speed, dy*speed))
}
