package tui

import (
	"fmt"
	"strings"
)

var helpLines = []string{
	"bubblemap Help",
	"==============",
	"",
	"Mouse:",
	"------",
	"  Left drag on empty space       Pan the canvas",
	"  Left drag on a bubble          Move the bubble",
	"  Left double click on a bubble  Edit its label",
	"  Right click on empty space     Create a bubble and edit its label",
	"  Right click on a bubble        Start a connection, click another bubble to finish",
	"  Ctrl/Alt + left on a bubble    Same as right click on a bubble",
	"  Ctrl/Alt + right or middle     Delete the bubble or connection under the pointer",
	"  Wheel                          Pan up and down",
	"  Ctrl/Alt + wheel               Zoom about the pointer",
	"",
	"Sticky modifiers (toggle on and off):",
	"-------------------------------------",
	"  space            Move a bubble together with everything it points to",
	"  r                Shift: drag resizes a bubble, right click recolors it",
	"  c                Ctrl: left click on a bubble starts a connection",
	"",
	"While connecting:",
	"-----------------",
	"  tab              Toggle solid/dashed line",
	"  esc              Cancel",
	"",
	"While editing a label:",
	"----------------------",
	"  enter            Confirm (an empty label keeps the old one)",
	"  esc              Cancel",
	"  ←/→              Move the cursor",
	"",
	"Canvas:",
	"-------",
	"  h/←/j/↓/k/↑/l/→  Pan one cell (Shift for two)",
	"  +/-              Zoom about the centre",
	"  1-9              Select the color for new bubbles",
	"  T                Toggle light/dark theme",
	"",
	"Files:",
	"------",
	"  ctrl+s           Save",
	"  ctrl+o           Reload the saved map",
	"  ctrl+n           Clear the map",
	"  ctrl+e           Export as PNG image",
	"  ctrl+t           Export what is on screen as text",
	"  ctrl+y           Copy the map as JSON to the clipboard",
	"  ctrl+v           Import a map from JSON on the clipboard",
	"",
	"General:",
	"  esc              Cancel the current gesture",
	"  ?                Toggle this help screen",
	"  q/ctrl+c         Quit",
}

func (m *Model) helpView() string {
	visibleHeight := m.height - 1 // status line
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
