package gesture

import (
	"bubblemap/internal/geom"
	"bubblemap/internal/scene"
)

// Preview is the uncommitted link drawn while connecting, in canvas space.
type Preview struct {
	Active bool
	From   geom.Point
	To     geom.Point
	Style  scene.LineStyle
}

// Draft is a label being edited. It is only shown, never stored in the model.
type Draft struct {
	Active bool
	NodeID string
	Text   string
	Cursor int
}

// PreviewRenderer shows the transient state of a gesture. Nothing drawn
// through it is part of the scene.
type PreviewRenderer interface {
	DrawPreview(p Preview)
	ClearPreview()
	DrawDraft(d Draft)
	ClearDraft()
}

type nopPreview struct{}

func (nopPreview) DrawPreview(Preview) {}
func (nopPreview) ClearPreview() {}
func (nopPreview) DrawDraft(Draft) {}
func (nopPreview) ClearDraft() {}
