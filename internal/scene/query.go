package scene

import (
	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
)

func (m *Model) Node(id string) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns a copy of all nodes in insertion order.
func (m *Model) Nodes() []Node {
	out := make([]Node, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.nodes[id])
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (m *Model) Edges() []Edge {
	out := make([]Edge, len(m.edges))
	for i, e := range m.edges {
		if e.Override != nil {
			k := *e.Override
			e.Override = &k
		}
		out[i] = e
	}
	return out
}

// Edge looks up the edge between a and b in either direction.
func (m *Model) Edge(a, b string) (Edge, bool) {
	i := m.edgeIndex(a, b)
	if i < 0 {
		return Edge{}, false
	}
	e := m.edges[i]
	if e.Override != nil {
		k := *e.Override
		e.Override = &k
	}
	return e, true
}

func (m *Model) Len() int {
	return len(m.order)
}

func (m *Model) EdgeCount() int {
	return len(m.edges)
}

// NodeAt returns the topmost node containing the canvas point p.
func (m *Model) NodeAt(p geom.Point) (Node, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		n := m.nodes[m.order[i]]
		if n.Bounds().Contains(p) {
			return *n, true
		}
	}
	return Node{}, false
}

// EdgeAt returns the closest edge whose curve passes within tol of p.
func (m *Model) EdgeAt(p geom.Point, tol float64) (Edge, bool) {
	best := -1
	bestDist := tol
	for i, e := range m.edges {
		if d := m.path(e).Distance(p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Edge{}, false
	}
	return m.edges[best], true
}

func (m *Model) Bounds(id string) (geom.Rect, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return geom.Rect{}, false
	}
	return n.Bounds(), true
}

func (m *Model) Anchor(id string) (geom.Point, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return geom.Point{}, false
	}
	return n.Anchor(), true
}

// EdgePath computes the curve of e from the current node positions.
func (m *Model) EdgePath(e Edge) (geom.Cubic, bool) {
	src, ok := m.nodes[e.Source]
	if !ok {
		return geom.Cubic{}, false
	}
	dst, ok := m.nodes[e.Target]
	if !ok {
		return geom.Cubic{}, false
	}
	return geom.CurveBetween(src.Anchor(), dst.Anchor()), true
}

// EdgeColor resolves the color of e: its override when pinned, otherwise
// the target's current color. Anything unresolvable falls back to Default.
func (m *Model) EdgeColor(e Edge) palette.Key {
	if e.Override != nil && e.Override.Valid() {
		return *e.Override
	}
	if dst, ok := m.nodes[e.Target]; ok && dst.Color.Valid() {
		return dst.Color
	}
	return palette.Default
}

// ContentBounds is the box around all nodes, or a 100x100 box at the
// origin when the model is empty.
func (m *Model) ContentBounds() geom.Rect {
	if len(m.order) == 0 {
		return geom.Rect{W: 100, H: 100}
	}
	var r geom.Rect
	for _, id := range m.order {
		r = r.Union(m.nodes[id].Bounds())
	}
	return r
}
