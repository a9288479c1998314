// Package gesture turns raw pointer, wheel and key events into edits of a
// scene.Model.
package gesture

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
	"bubblemap/internal/scene"
)

var ErrInvalidEvent = errors.New("invalid event")

const (
	DefaultZoomStep      = 0.1
	DefaultEdgeTolerance = 10.0
)

// newNodeOffset centres a freshly created bubble on the pointer.
var newNodeOffset = geom.Pt(40, 20)

type Option func(*Controller)

func WithPreview(p PreviewRenderer) Option {
	return func(c *Controller) {
		if p != nil {
			c.preview = p
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOrigin sets the screen position of the canvas' top-left corner.
func WithOrigin(p geom.Point) Option {
	return func(c *Controller) {
		c.origin = p
	}
}

func WithZoomStep(step float64) Option {
	return func(c *Controller) {
		if step > 0 {
			c.zoomStep = step
		}
	}
}

func WithEdgeTolerance(tol float64) Option {
	return func(c *Controller) {
		if tol >= 0 {
			c.edgeTolerance = tol
		}
	}
}

// Controller is the interaction state machine. Previews and drafts never
// touch the model; only committed gestures call its mutation API.
type Controller struct {
	model   *scene.Model
	preview PreviewRenderer
	logger  *zap.Logger

	origin        geom.Point
	zoomStep      float64
	edgeTolerance float64

	mode    Mode
	button  Button
	target  string
	style   scene.LineStyle
	color   palette.Key
	latched Mods
	last    geom.Point
	lastPos geom.Point
	subtree []string
	moved   bool
	pending Preview
	editing editor
}

func New(model *scene.Model, opts ...Option) *Controller {
	c := &Controller{
		model:         model,
		preview:       nopPreview{},
		logger:        zap.NewNop(),
		zoomStep:      DefaultZoomStep,
		edgeTolerance: DefaultEdgeTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// Target is the node the current gesture acts on, if any.
func (c *Controller) Target() string {
	return c.target
}

func (c *Controller) Style() scene.LineStyle {
	return c.style
}

func (c *Controller) SelectedColor() palette.Key {
	return c.color
}

func (c *Controller) SelectColor(k palette.Key) {
	if k.Valid() {
		c.color = k
	}
}

// Latched returns the modifiers toggled on by key presses.
func (c *Controller) Latched() Mods {
	return c.latched
}

// ToggleLatch flips sticky modifiers for inputs that cannot report key release.
func (c *Controller) ToggleLatch(m Mods) {
	c.latched ^= m
}

func (c *Controller) Draft() Draft {
	if c.mode != EditingLabel {
		return Draft{}
	}
	return c.editing.draft(c.target)
}

func (c *Controller) Preview() Preview {
	return c.pending
}

func (c *Controller) Origin() geom.Point {
	return c.origin
}

func (c *Controller) SetOrigin(p geom.Point) {
	c.origin = p
}

func (c *Controller) toCanvas(screen geom.Point) geom.Point {
	return geom.ToCanvas(screen, c.model.View(), c.origin)
}

// Pointer feeds one pointer event through the state machine.
func (c *Controller) Pointer(ev PointerEvent) error {
	if !geom.Finite(ev.Screen) {
		return fmt.Errorf("pointer at %v: %w", ev.Screen, ErrInvalidEvent)
	}
	ev.Mods |= c.latched

	switch c.mode {
	case Idle:
		if ev.Kind == Down {
			return c.press(ev)
		}
		return nil
	case Panning:
		return c.pan(ev)
	case DraggingNode, ResizingNode:
		return c.drag(ev)
	case ConnectingFrom:
		return c.connect(ev)
	case EditingLabel:
		if ev.Kind != Down {
			return nil
		}
		if err := c.confirmEdit(); err != nil {
			return err
		}
		return c.press(ev)
	}
	return nil
}

// press dispatches a button press received while idle.
func (c *Controller) press(ev PointerEvent) error {
	at := c.toCanvas(ev.Screen)
	node, onNode := c.model.NodeAt(at)
	ctrl := ev.Mods.Has(ModCtrl)

	if ev.Button == Primary && !ctrl && !onNode {
		c.begin(Panning, ev, "")
		return nil
	}

	if (ctrl && ev.Button == Secondary) || ev.Button == Tertiary {
		if onNode {
			c.model.RemoveNode(node.ID)
			c.logger.Debug("node deleted", zap.String("id", node.ID))
			return nil
		}
		if e, ok := c.model.EdgeAt(at, c.edgeTolerance); ok {
			c.model.RemoveEdge(e.Source, e.Target)
			c.logger.Debug("connection deleted", zap.String("source", e.Source), zap.String("target", e.Target))
			return nil
		}
	}

	if ev.Button == Secondary && ev.Mods.Has(ModShift) {
		if onNode {
			return c.model.SetNodeColor(node.ID, c.color)
		}
		if e, ok := c.model.EdgeAt(at, c.edgeTolerance); ok {
			k := c.color
			c.model.SetEdgeColor(e.Source, e.Target, &k)
			return nil
		}
	}

	switch {
	case ev.Button == Secondary || (ctrl && ev.Button == Primary):
		if onNode {
			c.begin(ConnectingFrom, ev, node.ID)
			c.style = scene.Solid
			c.pending = Preview{Active: true, From: node.Anchor(), To: at, Style: c.style}
			c.preview.DrawPreview(c.pending)
			return nil
		}
		if ev.Button == Secondary {
			return c.create(at)
		}
	case ev.Button == Primary && onNode:
		c.begin(DraggingNode, ev, node.ID)
		c.subtree = c.model.Descendants(node.ID)
	}
	return nil
}

func (c *Controller) begin(m Mode, ev PointerEvent, target string) {
	c.mode = m
	c.button = ev.Button
	c.target = target
	c.last = ev.Screen
	c.lastPos = c.toCanvas(ev.Screen)
	c.moved = false
}

func (c *Controller) create(at geom.Point) error {
	id, err := c.model.AddNode(scene.DefaultLabel, c.color, at.Sub(newNodeOffset))
	if err != nil {
		return err
	}
	c.logger.Debug("node created", zap.String("id", id))
	return c.StartEdit(id)
}

func (c *Controller) pan(ev PointerEvent) error {
	switch ev.Kind {
	case Move:
		dx, dy := ev.Screen.X-c.last.X, ev.Screen.Y-c.last.Y
		c.last = ev.Screen
		return c.model.Pan(dx, dy)
	case Up:
		c.reset()
	}
	return nil
}

func (c *Controller) drag(ev PointerEvent) error {
	switch ev.Kind {
	case Move:
		if ev.Mods.Has(ModShift) {
			c.mode = ResizingNode
			return c.resize(ev)
		}
		c.mode = DraggingNode
		pos := c.toCanvas(ev.Screen)
		delta := pos.Sub(c.lastPos)
		c.last, c.lastPos = ev.Screen, pos

		ids := []string{c.target}
		if ev.Mods.Has(ModSubtree) {
			ids = append(ids, c.subtree...)
		}
		if err := c.model.TranslateNodes(ids, delta); err != nil {
			return err
		}
		c.moved = c.moved || delta != (geom.Point{})
	case Up:
		if c.moved {
			c.logger.Debug("node moved", zap.String("id", c.target))
		}
		c.reset()
	}
	return nil
}

// resize grows the node by the upward pointer motion, keeping its centre.
func (c *Controller) resize(ev PointerEvent) error {
	n, ok := c.model.Node(c.target)
	if !ok {
		c.reset()
		return nil
	}
	dy := (c.last.Y - ev.Screen.Y) / c.model.View().Zoom
	c.last, c.lastPos = ev.Screen, c.toCanvas(ev.Screen)

	height := n.Size().H
	next := math.Max(scene.MinHeight, height+dy)
	diff := next - height
	if diff == 0 {
		return nil
	}
	if err := c.model.ResizeNode(n.ID, geom.Size{W: n.Width, H: next}); err != nil {
		return err
	}
	c.moved = true
	return c.model.MoveNode(n.ID, geom.Pt(n.Pos.X, n.Pos.Y-diff/2))
}

func (c *Controller) connect(ev PointerEvent) error {
	switch ev.Kind {
	case Move:
		c.pending.To = c.toCanvas(ev.Screen)
		c.preview.DrawPreview(c.pending)
	case Down:
		if ev.Button == Primary {
			c.toggleStyle()
		}
	case Up:
		if ev.Button != c.button {
			return nil
		}
		if node, ok := c.model.NodeAt(c.toCanvas(ev.Screen)); ok && node.ID != c.target {
			if c.model.AddEdge(c.target, node.ID, c.style) {
				c.logger.Debug("connection added",
					zap.String("source", c.target),
					zap.String("target", node.ID),
					zap.Stringer("style", c.style))
			}
		}
		c.reset()
	}
	return nil
}

func (c *Controller) toggleStyle() {
	c.style = c.style.Toggle()
	c.pending.Style = c.style
	c.preview.DrawPreview(c.pending)
}

// Key feeds one key press through the state machine.
func (c *Controller) Key(ev KeyEvent) error {
	if c.mode == EditingLabel {
		return c.editKey(ev)
	}
	switch ev.Key {
	case KeyEscape:
		c.Cancel()
	case KeyShift, KeyTab:
		if c.mode == ConnectingFrom {
			c.toggleStyle()
		}
	case KeySpace:
		c.ToggleLatch(ModSubtree)
	case KeyRune:
		if ev.Rune >= '1' && ev.Rune <= '9' {
			if k, ok := palette.ByIndex(int(ev.Rune - '1')); ok {
				c.color = k
			}
		}
	}
	return nil
}

// Wheel pans by the negated scroll delta, or zooms about the pointer with ctrl.
func (c *Controller) Wheel(ev WheelEvent) error {
	if !geom.Finite(ev.Screen) || !geom.Finite(geom.Pt(ev.DX, ev.DY)) {
		return fmt.Errorf("wheel: %w", ErrInvalidEvent)
	}
	if (ev.Mods | c.latched).Has(ModCtrl) {
		if ev.DY == 0 {
			return nil
		}
		return c.Zoom(ev.Screen, ev.DY < 0)
	}
	return c.model.Pan(-ev.DX, -ev.DY)
}

// Zoom steps the zoom in or out keeping the canvas point under screen fixed.
func (c *Controller) Zoom(screen geom.Point, in bool) error {
	factor := 1 + c.zoomStep
	if !in {
		factor = 1 / factor
	}
	return c.model.ZoomAt(screen, c.origin, factor)
}

// DoublePress starts editing the label of the node under the pointer.
func (c *Controller) DoublePress(ev PointerEvent) error {
	if c.mode != Idle {
		return nil
	}
	if node, ok := c.model.NodeAt(c.toCanvas(ev.Screen)); ok {
		return c.StartEdit(node.ID)
	}
	return nil
}

// Cancel returns to Idle from any state, discarding previews and drafts.
func (c *Controller) Cancel() {
	if c.mode == EditingLabel {
		c.abortEdit()
		return
	}
	c.reset()
}

// Blur handles focus loss: a label edit is committed, anything else cancelled.
func (c *Controller) Blur() error {
	if c.mode == EditingLabel {
		return c.confirmEdit()
	}
	c.reset()
	c.latched = 0
	return nil
}

func (c *Controller) reset() {
	if c.pending.Active {
		c.preview.ClearPreview()
	}
	c.mode = Idle
	c.target = ""
	c.style = scene.Solid
	c.subtree = nil
	c.moved = false
	c.pending = Preview{}
}
