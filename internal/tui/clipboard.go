package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

func (m *Model) copyJSON() {
	m.report(m.session.Controller.Blur())
	data, err := m.session.ExportJSON()
	if err != nil {
		m.report(err)
		return
	}
	if err := m.writeClipboard(string(data)); err != nil {
		m.report(fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	m.succeed("Copied %d bubbles as JSON", m.session.Model.Len())
}

func (m *Model) pasteJSON() {
	text, err := m.readClipboard()
	if err != nil {
		m.report(fmt.Errorf("read clipboard: %w", err))
		return
	}
	if strings.TrimSpace(text) == "" {
		m.report(fmt.Errorf("clipboard is empty"))
		return
	}
	skipped, err := m.session.ImportJSON([]byte(text))
	if err != nil {
		m.report(err)
		return
	}
	if skipped > 0 {
		m.succeed("Imported %d bubbles, skipped %d connections", m.session.Model.Len(), skipped)
		return
	}
	m.succeed("Imported %d bubbles", m.session.Model.Len())
}
