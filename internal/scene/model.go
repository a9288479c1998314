// Package scene holds the authoritative set of bubbles and links of a mind
// map together with the view transform they are displayed through.
package scene

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
)

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 2.5
)

type Option func(*Model)

func WithRenderer(r Renderer) Option {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithIDGenerator replaces the uuid based node id generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Model) {
		if gen != nil {
			m.newID = gen
		}
	}
}

func WithZoomLimits(min, max float64) Option {
	return func(m *Model) {
		if min > 0 && max >= min {
			m.minZoom, m.maxZoom = min, max
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Model is not safe for concurrent use. All access is expected to happen
// on the goroutine that handles input events.
type Model struct {
	nodes map[string]*Node
	order []string
	edges []Edge

	view             geom.ViewTransform
	minZoom, maxZoom float64

	dirty    bool
	newID    func() string
	renderer Renderer
	logger   *zap.Logger
}

func New(opts ...Option) *Model {
	m := &Model{
		nodes:    make(map[string]*Node),
		view:     geom.Identity(),
		minZoom:  DefaultMinZoom,
		maxZoom:  DefaultMaxZoom,
		newID:    func() string { return uuid.New().String() },
		renderer: nopRenderer{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetRenderer attaches r and replays the whole scene into it.
func (m *Model) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	m.renderer = r
	m.Redraw()
}

func (m *Model) Redraw() {
	m.Replay(m.renderer)
}

// Replay draws the current scene into r without attaching it.
func (m *Model) Replay(r Renderer) {
	r.SetViewTransform(m.view)
	for _, id := range m.order {
		r.DrawNode(*m.nodes[id])
	}
	for _, e := range m.edges {
		r.DrawEdge(e, m.EdgeColor(e), m.path(e))
	}
}

func (m *Model) Dirty() bool {
	return m.dirty
}

func (m *Model) MarkClean() {
	m.dirty = false
}

func (m *Model) ZoomLimits() (min, max float64) {
	return m.minZoom, m.maxZoom
}

func (m *Model) freshID() string {
	for {
		id := m.newID()
		if _, taken := m.nodes[id]; !taken && id != "" {
			return id
		}
	}
}

// AddNode creates a bubble with a generated id at pos (its top-left corner).
func (m *Model) AddNode(label string, color palette.Key, pos geom.Point) (string, error) {
	n := Node{ID: m.freshID(), Label: label, Color: color, Pos: pos}
	if err := m.InsertNode(n); err != nil {
		return "", err
	}
	return n.ID, nil
}

// InsertNode adds n keeping its id. An empty id is replaced with a fresh one.
func (m *Model) InsertNode(n Node) error {
	if n.ID == "" {
		n.ID = m.freshID()
	}
	if _, ok := m.nodes[n.ID]; ok {
		return fmt.Errorf("insert %q: %w", n.ID, ErrDuplicateID)
	}
	if err := n.validate(); err != nil {
		return fmt.Errorf("insert %q: %w", n.ID, err)
	}
	if !n.Color.Valid() {
		n.Color = palette.Default
	}
	m.nodes[n.ID] = &n
	m.order = append(m.order, n.ID)
	m.dirty = true
	m.renderer.DrawNode(n)
	return nil
}

// RemoveNode deletes the node and every edge touching it. Removing an
// absent id is a no-op.
func (m *Model) RemoveNode(id string) bool {
	if _, ok := m.nodes[id]; !ok {
		return false
	}
	kept := m.edges[:0]
	for _, e := range m.edges {
		if e.touches(id) {
			m.renderer.RemoveEdge(e.Key())
			continue
		}
		kept = append(kept, e)
	}
	m.edges = kept

	delete(m.nodes, id)
	for i, nid := range m.order {
		if nid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.dirty = true
	m.renderer.RemoveNode(id)
	return true
}

func (m *Model) lookup(id string) (*Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", id, ErrUnknownNode)
	}
	return n, nil
}

func (m *Model) MoveNode(id string, pos geom.Point) error {
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	if !geom.Finite(pos) {
		return fmt.Errorf("move %q: %w", id, ErrInvalidGeometry)
	}
	n.Pos = pos
	m.touched(id)
	return nil
}

// TranslateNodes moves every listed node by delta. Either all nodes move or none.
func (m *Model) TranslateNodes(ids []string, delta geom.Point) error {
	if !geom.Finite(delta) {
		return fmt.Errorf("translate: %w", ErrInvalidGeometry)
	}
	moved := make([]*Node, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		n, err := m.lookup(id)
		if err != nil {
			return err
		}
		if !geom.Finite(n.Pos.Add(delta)) {
			return fmt.Errorf("translate %q: %w", id, ErrInvalidGeometry)
		}
		moved = append(moved, n)
	}
	if len(moved) == 0 {
		return nil
	}
	m.dirty = true
	for _, n := range moved {
		n.Pos = n.Pos.Add(delta)
		m.renderer.DrawNode(*n)
	}
	for _, e := range m.edges {
		if seen[e.Source] || seen[e.Target] {
			m.drawEdge(e)
		}
	}
	return nil
}

// ResizeNode sets the explicit size. A zero component goes back to the
// content derived size.
func (m *Model) ResizeNode(id string, size geom.Size) error {
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	if !geom.FiniteSize(size) || size.W < 0 || size.H < 0 {
		return fmt.Errorf("resize %q: %w", id, ErrInvalidGeometry)
	}
	n.Width, n.Height = size.W, size.H
	m.touched(id)
	return nil
}

func (m *Model) SetNodeColor(id string, key palette.Key) error {
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	if !key.Valid() {
		key = palette.Default
	}
	n.Color = key
	m.touched(id)
	return nil
}

func (m *Model) SetLabel(id, text string) error {
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	n.Label = text
	m.touched(id)
	return nil
}

// SetFontSize sets the label size in px; 0 restores the base size.
func (m *Model) SetFontSize(id string, px float64) error {
	n, err := m.lookup(id)
	if err != nil {
		return err
	}
	probe := *n
	probe.FontSize = px
	if err := probe.validate(); err != nil {
		return fmt.Errorf("font size %q: %w", id, err)
	}
	n.FontSize = px
	m.touched(id)
	return nil
}

// touched marks the model dirty and redraws a node with its incident edges.
func (m *Model) touched(id string) {
	m.dirty = true
	m.renderer.DrawNode(*m.nodes[id])
	for _, e := range m.edges {
		if e.touches(id) {
			m.drawEdge(e)
		}
	}
}

// AddEdge links src to dst. It reports false for self loops, unknown ids
// and pairs that are already linked in either direction.
func (m *Model) AddEdge(src, dst string, style LineStyle) bool {
	return m.addEdge(Edge{Source: src, Target: dst, Style: style})
}

func (m *Model) addEdge(e Edge) bool {
	if e.Source == e.Target {
		return false
	}
	if _, ok := m.nodes[e.Source]; !ok {
		return false
	}
	if _, ok := m.nodes[e.Target]; !ok {
		return false
	}
	if m.edgeIndex(e.Source, e.Target) >= 0 {
		return false
	}
	if e.Override != nil && !e.Override.Valid() {
		e.Override = nil
	}
	m.edges = append(m.edges, e)
	m.dirty = true
	m.drawEdge(e)
	return true
}

// RemoveEdge deletes the edge between the pair, whichever way it points.
func (m *Model) RemoveEdge(src, dst string) bool {
	i := m.edgeIndex(src, dst)
	if i < 0 {
		return false
	}
	key := m.edges[i].Key()
	m.edges = append(m.edges[:i], m.edges[i+1:]...)
	m.dirty = true
	m.renderer.RemoveEdge(key)
	return true
}

// SetEdgeColor pins the edge color to key, or unpins it when key is nil.
func (m *Model) SetEdgeColor(src, dst string, key *palette.Key) bool {
	i := m.edgeIndex(src, dst)
	if i < 0 {
		return false
	}
	if key != nil {
		if !key.Valid() {
			return false
		}
		k := *key
		key = &k
	}
	m.edges[i].Override = key
	m.dirty = true
	m.drawEdge(m.edges[i])
	return true
}

func (m *Model) edgeIndex(a, b string) int {
	key := KeyOf(a, b)
	for i, e := range m.edges {
		if e.Key() == key {
			return i
		}
	}
	return -1
}

func (m *Model) drawEdge(e Edge) {
	m.renderer.DrawEdge(e, m.EdgeColor(e), m.path(e))
}

func (m *Model) path(e Edge) geom.Cubic {
	return geom.CurveBetween(m.nodes[e.Source].Anchor(), m.nodes[e.Target].Anchor())
}

// Descendants returns the ids reachable from id following edges from
// source to target, each once, in discovery order. id itself is excluded
// even when a cycle leads back to it.
func (m *Model) Descendants(id string) []string {
	if _, ok := m.nodes[id]; !ok {
		return nil
	}
	visited := map[string]bool{id: true}
	var out []string
	var walk func(string)
	walk = func(from string) {
		for _, e := range m.edges {
			if e.Source != from || visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			out = append(out, e.Target)
			walk(e.Target)
		}
	}
	walk(id)
	return out
}

// Clear removes every node and edge and resets the view.
func (m *Model) Clear() {
	for _, e := range m.edges {
		m.renderer.RemoveEdge(e.Key())
	}
	for _, id := range m.order {
		m.renderer.RemoveNode(id)
	}
	m.nodes = make(map[string]*Node)
	m.order = nil
	m.edges = nil
	m.view = geom.Identity()
	m.dirty = true
	m.renderer.SetViewTransform(m.view)
}

// Restore replaces the whole content. Nodes are validated first; on error
// the model is left untouched. Edges that reference unknown nodes, loop
// onto their source, or repeat a pair are skipped and counted.
func (m *Model) Restore(nodes []Node, edges []Edge, view geom.ViewTransform) (skipped int, err error) {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID != "" && ids[n.ID] {
			return 0, fmt.Errorf("restore %q: %w", n.ID, ErrDuplicateID)
		}
		if err := n.validate(); err != nil {
			return 0, fmt.Errorf("restore %q: %w", n.ID, err)
		}
		ids[n.ID] = true
	}
	if !view.Valid() {
		return 0, fmt.Errorf("restore view: %w", ErrInvalidGeometry)
	}

	m.Clear()
	for _, n := range nodes {
		if err := m.InsertNode(n); err != nil {
			// validated above, so only a generated id clash can land here
			return 0, err
		}
	}
	for _, e := range edges {
		if !m.addEdge(e) {
			skipped++
			m.logger.Warn("skipping connection",
				zap.String("source", e.Source),
				zap.String("target", e.Target))
		}
	}
	m.SetView(view)
	return skipped, nil
}
