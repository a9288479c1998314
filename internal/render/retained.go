// Package render draws a scene into terminal cells or a PNG image.
package render

import (
	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
	"bubblemap/internal/scene"
)

type drawnEdge struct {
	edge  scene.Edge
	color palette.Key
	path  geom.Cubic
}

// retained mirrors what the model last told us to draw.
type retained struct {
	nodes     map[string]scene.Node
	order     []string
	edges     map[scene.EdgeKey]drawnEdge
	edgeOrder []scene.EdgeKey
	view      geom.ViewTransform
}

func newRetained() retained {
	return retained{
		nodes: make(map[string]scene.Node),
		edges: make(map[scene.EdgeKey]drawnEdge),
		view:  geom.Identity(),
	}
}

func (r *retained) DrawNode(n scene.Node) {
	if _, ok := r.nodes[n.ID]; !ok {
		r.order = append(r.order, n.ID)
	}
	r.nodes[n.ID] = n
}

func (r *retained) RemoveNode(id string) {
	if _, ok := r.nodes[id]; !ok {
		return
	}
	delete(r.nodes, id)
	for i, nid := range r.order {
		if nid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *retained) DrawEdge(e scene.Edge, color palette.Key, path geom.Cubic) {
	key := e.Key()
	if _, ok := r.edges[key]; !ok {
		r.edgeOrder = append(r.edgeOrder, key)
	}
	r.edges[key] = drawnEdge{edge: e, color: color, path: path}
}

func (r *retained) RemoveEdge(key scene.EdgeKey) {
	if _, ok := r.edges[key]; !ok {
		return
	}
	delete(r.edges, key)
	for i, k := range r.edgeOrder {
		if k == key {
			r.edgeOrder = append(r.edgeOrder[:i], r.edgeOrder[i+1:]...)
			break
		}
	}
}

func (r *retained) SetViewTransform(t geom.ViewTransform) {
	r.view = t
}

func (r *retained) eachNode(fn func(scene.Node)) {
	for _, id := range r.order {
		fn(r.nodes[id])
	}
}

func (r *retained) eachEdge(fn func(drawnEdge)) {
	for _, k := range r.edgeOrder {
		fn(r.edges[k])
	}
}

// bounds is the box around every node, or false when nothing is drawn.
func (r *retained) bounds() (geom.Rect, bool) {
	if len(r.order) == 0 {
		return geom.Rect{}, false
	}
	var b geom.Rect
	r.eachNode(func(n scene.Node) {
		b = b.Union(n.Bounds())
	})
	return b, true
}
