// Package codec reads and writes the JSON document a mind map is saved as.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
	"bubblemap/internal/scene"
)

var ErrMalformedDocument = errors.New("malformed document")

var validate = validator.New()

// Snapshot is a decoded document, ready to be restored into a model.
type Snapshot struct {
	Nodes []scene.Node
	Edges []scene.Edge
	View  geom.ViewTransform
}

// Encode builds the document for the model's current content.
func Encode(m *scene.Model) Document {
	nodes := m.Nodes()
	edges := m.Edges()
	view := m.View()

	doc := Document{
		Bubbles:     make([]Bubble, 0, len(nodes)),
		Connections: make([]Connection, 0, len(edges)),
		Zoom:        &view.Zoom,
		Translate:   &Translate{X: view.PanX, Y: view.PanY},
	}
	for _, n := range nodes {
		left, top := n.Pos.X, n.Pos.Y
		doc.Bubbles = append(doc.Bubbles, Bubble{
			ID:       n.ID,
			Text:     n.Label,
			Color:    n.Color.String(),
			Left:     &left,
			Top:      &top,
			Width:    Length(n.Width),
			Height:   Length(n.Height),
			FontSize: Length(n.FontSize),
		})
	}
	for _, e := range edges {
		c := Connection{StartID: e.Source, EndID: e.Target, LineType: e.Style.String()}
		if e.Override != nil {
			name := e.Override.String()
			c.Color = &name
		}
		doc.Connections = append(doc.Connections, c)
	}
	return doc
}

func Marshal(m *scene.Model) ([]byte, error) {
	return json.Marshal(Encode(m))
}

// MarshalIndent is Marshal with two space indentation, for files meant to be read.
func MarshalIndent(m *scene.Model) ([]byte, error) {
	return json.MarshalIndent(Encode(m), "", "  ")
}

// Decode parses and validates a document. Missing optional fields take
// their defaults: unknown colors read as default, unknown line types as
// solid, a missing bubble id gets a fresh one, a missing zoom is 1.
func Decode(data []byte) (*Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, describe(err))
	}

	snap := &Snapshot{
		Nodes: make([]scene.Node, 0, len(doc.Bubbles)),
		Edges: make([]scene.Edge, 0, len(doc.Connections)),
		View:  geom.Identity(),
	}
	seen := make(map[string]bool, len(doc.Bubbles))
	for i, b := range doc.Bubbles {
		id := b.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: bubbles[%d]: duplicate id %q", ErrMalformedDocument, i, id)
		}
		seen[id] = true
		color, _ := palette.Parse(b.Color)
		snap.Nodes = append(snap.Nodes, scene.Node{
			ID:       id,
			Label:    b.Text,
			Color:    color,
			Pos:      geom.Pt(*b.Left, *b.Top),
			Width:    float64(b.Width),
			Height:   float64(b.Height),
			FontSize: float64(b.FontSize),
		})
	}
	for _, c := range doc.Connections {
		style, _ := scene.ParseLineStyle(c.LineType)
		e := scene.Edge{Source: c.StartID, Target: c.EndID, Style: style}
		if c.Color != nil {
			if k, ok := palette.Parse(*c.Color); ok {
				e.Override = &k
			}
		}
		snap.Edges = append(snap.Edges, e)
	}
	if doc.Zoom != nil {
		if *doc.Zoom <= 0 {
			return nil, fmt.Errorf("%w: zoom must be positive", ErrMalformedDocument)
		}
		snap.View.Zoom = *doc.Zoom
	}
	if doc.Translate != nil {
		snap.View.PanX, snap.View.PanY = doc.Translate.X, doc.Translate.Y
	}
	return snap, nil
}

// Unmarshal replaces the content of m with the document. On error m is
// left untouched. Connections that reference unknown bubbles are skipped
// and counted.
func Unmarshal(data []byte, m *scene.Model) (skipped int, err error) {
	snap, err := Decode(data)
	if err != nil {
		return 0, err
	}
	skipped, err = m.Restore(snap.Nodes, snap.Edges, snap.View)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return skipped, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", e.Namespace(), e.Tag(), e.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
