package tui

import (
	"fmt"
	"os"
)

const (
	pngName = "mindmap.png"
	txtName = "mindmap.txt"
)

func (m *Model) exportPNG() {
	path := m.cfg.SavePath(pngName)
	if err := m.session.ExportPNG(path); err != nil {
		m.report(err)
		return
	}
	m.succeed("Exported %s", path)
}

// exportVisualTXT writes the canvas exactly as it is on screen, without colors.
func (m *Model) exportVisualTXT() {
	path := m.cfg.SavePath(txtName)
	if err := m.writeVisualTXT(path); err != nil {
		m.report(err)
		return
	}
	m.succeed("Exported %s", path)
}

func (m *Model) writeVisualTXT(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	width, height := m.canvasSize()
	for _, line := range m.canvas.Plain(width, height) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return file.Close()
}
