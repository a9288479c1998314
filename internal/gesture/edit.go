package gesture

import (
	"fmt"

	"go.uber.org/zap"

	"bubblemap/internal/scene"
)

// editor holds the uncommitted label text. A fresh edit starts with the
// whole text selected, so the first keystroke replaces it.
type editor struct {
	prior    string
	text     []rune
	cursor   int
	selected bool
}

func (e editor) draft(id string) Draft {
	return Draft{Active: true, NodeID: id, Text: string(e.text), Cursor: e.cursor}
}

func (e *editor) takeSelection() {
	if e.selected {
		e.text = e.text[:0]
		e.cursor = 0
		e.selected = false
	}
}

func (e *editor) insert(r rune) {
	e.takeSelection()
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

func (e *editor) backspace() {
	if e.selected {
		e.takeSelection()
		return
	}
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

func (e *editor) left() {
	if e.selected {
		e.selected = false
		e.cursor = 0
		return
	}
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *editor) right() {
	if e.selected {
		e.selected = false
		e.cursor = len(e.text)
		return
	}
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// StartEdit enters EditingLabel on the node. A gesture in progress is
// cancelled; an edit in progress on another node is committed first.
func (c *Controller) StartEdit(id string) error {
	if c.mode == EditingLabel {
		if c.target == id {
			return nil
		}
		if err := c.confirmEdit(); err != nil {
			return err
		}
	}
	n, ok := c.model.Node(id)
	if !ok {
		return fmt.Errorf("edit %q: %w", id, scene.ErrUnknownNode)
	}
	c.reset()
	c.mode = EditingLabel
	c.target = id
	text := []rune(n.Label)
	c.editing = editor{prior: n.Label, text: text, cursor: len(text), selected: true}
	c.preview.DrawDraft(c.editing.draft(id))
	return nil
}

func (c *Controller) editKey(ev KeyEvent) error {
	switch ev.Key {
	case KeyEnter:
		return c.confirmEdit()
	case KeyEscape:
		c.abortEdit()
		return nil
	case KeyRune:
		if ev.Rune == 0 {
			return nil
		}
		c.editing.insert(ev.Rune)
	case KeySpace:
		c.editing.insert(' ')
	case KeyBackspace:
		c.editing.backspace()
	case KeyLeft:
		c.editing.left()
	case KeyRight:
		c.editing.right()
	default:
		return nil
	}
	c.preview.DrawDraft(c.editing.draft(c.target))
	return nil
}

// confirmEdit commits the draft. An empty draft keeps the prior label.
func (c *Controller) confirmEdit() error {
	id, prior := c.target, c.editing.prior
	text := string(c.editing.text)
	if text == "" {
		text = prior
	}
	c.endEdit()
	if text == prior {
		return nil
	}
	if err := c.model.SetLabel(id, text); err != nil {
		return err
	}
	c.logger.Debug("label changed", zap.String("id", id))
	return nil
}

func (c *Controller) abortEdit() {
	c.endEdit()
}

func (c *Controller) endEdit() {
	c.preview.ClearDraft()
	c.editing = editor{}
	c.reset()
}
