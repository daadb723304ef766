/*
Package bezier holds cubic Bézier curves together with their flattened
arc/line representation.

A Curve is defined by its four control points. Everything else (end angles,
length, tightest radius and the segment list) is derived by FixUp, and every
method that changes the control points calls FixUp before it returns.
*/
package bezier

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/flatten"
	"github.com/ankon/xtrkcad-sub003/metrics"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// Curve is a cubic Bézier with derived data.
type Curve struct {
	Pos       [4]curve.Point // P0, the two controls, P3
	Kind      flatten.Kind
	Angle0    float64 // tangent at P0, in the direction of travel
	Angle3    float64 // tangent at P3, in the direction of travel
	Length    float64 // length of the flattened curve
	MinRadius float64 // smallest arc radius, easement.RadiusSentinel if none
	Segs      []seg.Segment
}

// New creates a curve from four control points.
func New(p0, p1, p2, p3 curve.Point, kind flatten.Kind) *Curve {
	c := &Curve{Pos: [4]curve.Point{p0, p1, p2, p3}, Kind: kind}
	c.FixUp()
	return c
}

// FromCubic creates a curve from a cubic.
func FromCubic(cb curve.CubicBez, kind flatten.Kind) *Curve {
	return New(cb.P0, cb.P1, cb.P2, cb.P3, kind)
}

// Cubic returns the control points as a cubic.
func (c *Curve) Cubic() curve.CubicBez {
	return curve.CubicBez{P0: c.Pos[0], P1: c.Pos[1], P2: c.Pos[2], P3: c.Pos[3]}
}

// FixUp recomputes all derived data from the control points. Calling it on
// a fixed-up curve changes nothing.
func (c *Curve) FixUp() {
	cb := c.Cubic()
	d0, d1 := cb.Tangents()
	c.Angle0, c.Angle3 = d0.Angle(), d1.Angle()
	c.Segs = flatten.Cubic(cb, c.Kind)
	node := seg.Of(c.Segs)
	c.Length = metrics.Length(node)
	c.MinRadius = metrics.MinRadius(node, easement.RadiusSentinel)
	tracer().Debugf("fixed up %s", c)
}

// Clone returns a deep copy.
func (c *Curve) Clone() *Curve {
	d := *c
	d.Segs = append([]seg.Segment(nil), c.Segs...)
	return &d
}

// Node returns the segment list as a tree branch. The branch holds copies of
// the segments.
func (c *Curve) Node() seg.Node {
	return seg.Of(c.Segs)
}

// Start returns the first control point together with its tangent and
// signed curvature.
func (c *Curve) Start() easement.EndpointConstraint {
	return endAt(c.Cubic(), c.Pos[0], c.Angle0, 0)
}

// End returns the last control point together with its tangent and signed
// curvature.
func (c *Curve) End() easement.EndpointConstraint {
	return endAt(c.Cubic(), c.Pos[3], c.Angle3, 1)
}

func endAt(cb curve.CubicBez, pt curve.Point, angle, t float64) easement.EndpointConstraint {
	k := Curvature(cb, t)
	if easement.Is0(k) {
		return easement.Straight(pt, angle)
	}
	return easement.Curved(pt, angle, 1/k)
}

// Curvature returns the signed curvature of a cubic at t, positive when
// turning left. It returns 0 where the derivative vanishes.
func Curvature(cb curve.CubicBez, t float64) float64 {
	mt := 1 - t
	a, b, d := cb.P1.Sub(cb.P0), cb.P2.Sub(cb.P1), cb.P3.Sub(cb.P2)
	d1 := a.Mul(3 * mt * mt).Add(b.Mul(6 * mt * t)).Add(d.Mul(3 * t * t))
	d2 := b.Sub(a).Mul(6 * mt).Add(d.Sub(b).Mul(6 * t))
	h := d1.Hypot()
	if h <= 1e-12 {
		return 0
	}
	return d1.Cross(d2) / (h * h * h)
}

// Reverse turns the direction of travel around.
func (c *Curve) Reverse() {
	c.Pos[0], c.Pos[1], c.Pos[2], c.Pos[3] = c.Pos[3], c.Pos[2], c.Pos[1], c.Pos[0]
	c.FixUp()
}

// Transform maps all control points through aff.
func (c *Curve) Transform(aff curve.Affine) {
	for i := range c.Pos {
		c.Pos[i] = c.Pos[i].Transform(aff)
	}
	c.FixUp()
}

// AdjustEndPoint moves end i (0 or 1) to pt. The adjacent control point is
// dragged along, which keeps the end tangent.
func (c *Curve) AdjustEndPoint(i int, pt curve.Point) error {
	if i != 0 && i != 1 {
		return fmt.Errorf("bezier: no end %d", i)
	}
	e, ctl := 0, 1
	if i == 1 {
		e, ctl = 3, 2
	}
	delta := pt.Sub(c.Pos[e])
	c.Pos[e] = pt
	c.Pos[ctl] = c.Pos[ctl].Translate(delta)
	c.FixUp()
	return nil
}

// MathLength is the arc length of the cubic itself, as opposed to the length
// of its flattened form.
func (c *Curve) MathLength() float64 {
	return c.Cubic().Arclen(1e-6)
}

// BoundingBox returns the tight bounding box of the curve.
func (c *Curve) BoundingBox() curve.Rect {
	return c.Cubic().BoundingBox()
}

// Subdivide cuts the curve at parameter t by de Casteljau. Both pieces keep
// the kind of c.
func (c *Curve) Subdivide(t float64) (*Curve, *Curve) {
	t = math.Max(0, math.Min(1, t))
	cb := c.Cubic()
	return FromCubic(cb.Subsegment(0, t), c.Kind), FromCubic(cb.Subsegment(t, 1), c.Kind)
}

// IsFinite is a predicate: are all control points finite numbers?
func (c *Curve) IsFinite() bool {
	for _, p := range c.Pos {
		if !easement.IsFinite(p.X) || !easement.IsFinite(p.Y) {
			return false
		}
	}
	return true
}

func (c *Curve) String() string {
	return fmt.Sprintf("bezier[%v %v %v %v] len=%.4g minr=%.4g segs=%d", c.Pos[0], c.Pos[1],
		c.Pos[2], c.Pos[3], c.Length, c.MinRadius, len(c.Segs))
}
