package geom

import (
	"fmt"
	"math"
)

const (
	curvature    = 0.3
	maxCurvature = 150.0
	curveSamples = 32
)

// Cubic is a cubic Bézier path from From to To with control points C1 and C2.
type Cubic struct {
	From, C1, C2, To Point
}

// CurveBetween computes the connection curve between two anchor points.
//
// The bulge magnitude grows with distance (30%, capped at 150). Its side is
// picked from the dominant axis so that curves always bend the same way for
// the same relative placement: horizontal-dominant links bend towards +y when
// the target is below and -y otherwise, vertical-dominant links towards +x
// when the target is to the right and -x otherwise.
func CurveBetween(a, b Point) Cubic {
	dx := b.X - a.X
	dy := b.Y - a.Y
	intensity := math.Min(math.Hypot(dx, dy)*curvature, maxCurvature)
	angle := math.Atan2(dy, dx)

	direction := 1.0
	if math.Abs(dx) > math.Abs(dy) {
		if dy <= 0 {
			direction = -1
		}
	} else if dx <= 0 {
		direction = -1
	}

	perp := Point{
		X: -math.Sin(angle) * intensity * direction,
		Y: math.Cos(angle) * intensity * direction,
	}
	return Cubic{
		From: a,
		C1:   Point{X: a.X + dx*0.3 + perp.X*0.7, Y: a.Y + dy*0.3 + perp.Y*0.7},
		C2:   Point{X: b.X - dx*0.3 + perp.X*0.3, Y: b.Y - dy*0.3 + perp.Y*0.3},
		To:   b,
	}
}

// At evaluates the curve at t in [0, 1].
func (c Cubic) At(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return Point{
		X: a*c.From.X + b*c.C1.X + d*c.C2.X + e*c.To.X,
		Y: a*c.From.Y + b*c.C1.Y + d*c.C2.Y + e*c.To.Y,
	}
}

// Points samples n+1 evenly spaced (in t) points along the curve.
func (c Cubic) Points(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.At(float64(i)/float64(n)))
	}
	return pts
}

// Distance approximates the distance from p to the curve by sampling it as a polyline.
func (c Cubic) Distance(p Point) float64 {
	pts := c.Points(curveSamples)
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		if d := segmentDistance(pts[i], pts[i+1], p); d < best {
			best = d
		}
	}
	return best
}

func segmentDistance(a, b, p Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// Bounds returns the box around the curve's control polygon, which contains the curve.
func (c Cubic) Bounds() (min, max Point) {
	min, max = c.From, c.From
	for _, p := range []Point{c.C1, c.C2, c.To} {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// SVG renders the path in SVG path-data syntax.
func (c Cubic) SVG() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		c.From.X, c.From.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
}
