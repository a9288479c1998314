package scene

import (
	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
)

// Renderer receives every visual change of a Model. Implementations own
// the actual output; the model never reads anything back from them.
type Renderer interface {
	DrawNode(n Node)
	RemoveNode(id string)
	DrawEdge(e Edge, color palette.Key, path geom.Cubic)
	RemoveEdge(key EdgeKey)
	SetViewTransform(t geom.ViewTransform)
}

type nopRenderer struct{}

func (nopRenderer) DrawNode(Node) {}
func (nopRenderer) RemoveNode(string) {}
func (nopRenderer) DrawEdge(Edge, palette.Key, geom.Cubic) {}
func (nopRenderer) RemoveEdge(EdgeKey) {}
func (nopRenderer) SetViewTransform(geom.ViewTransform) {}
