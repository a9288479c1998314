package scene

import (
	"fmt"

	"bubblemap/internal/geom"
)

func (m *Model) View() geom.ViewTransform {
	return m.view
}

// SetView replaces the view transform, clamping its zoom to the model's
// limits. View changes do not mark the model dirty.
func (m *Model) SetView(v geom.ViewTransform) error {
	if !v.Valid() {
		return fmt.Errorf("view: %w", ErrInvalidGeometry)
	}
	m.view = v.ClampZoom(m.minZoom, m.maxZoom)
	m.renderer.SetViewTransform(m.view)
	return nil
}

func (m *Model) Pan(dx, dy float64) error {
	return m.SetView(m.view.Panned(dx, dy))
}

// ZoomAt scales the view by factor about the screen point.
func (m *Model) ZoomAt(screen, origin geom.Point, factor float64) error {
	if factor <= 0 || !geom.Finite(geom.Pt(factor, 0)) || !geom.Finite(screen) {
		return fmt.Errorf("zoom: %w", ErrInvalidGeometry)
	}
	return m.SetView(m.view.ZoomedAt(screen, origin, factor, m.minZoom, m.maxZoom))
}
