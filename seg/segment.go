/*
Package seg holds the primitive pieces of a flattened curve: straight lines
and circular arcs, and the tree those pieces are organized in.

A Segment is a value. Curves own their segment slices and hand out copies;
nothing in this package keeps pointers between segments. Trees are built from
three node types: a Segment leaf, a Branch holding an ordered list of nodes,
and a Reversed wrapper which flips the storage order of everything below it.

Angles are radians, counter-clockwise from +x.
*/
package seg

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

const _epsilon = 0.0000001

// Kind discriminates line segments from arc segments.
type Kind uint8

const (
	Line Kind = iota // straight line from P0 to P1
	Arc              // circular arc around Center
)

func (k Kind) String() string {
	if k == Arc {
		return "arc"
	}
	return "line"
}

// Segment is a straight line or a circular arc.
//
// For lines, P0 and P1 are the endpoints in storage order. For arcs, Start is
// the polar angle of the first point as seen from Center, and Sweep is the
// signed angle covered (positive is counter-clockwise). Radius is always
// positive.
type Segment struct {
	Kind   Kind
	P0, P1 curve.Point
	Center curve.Point
	Radius float64
	Start  float64
	Sweep  float64
}

// NewLine creates a line segment.
func NewLine(p0, p1 curve.Point) Segment {
	return Segment{Kind: Line, P0: p0, P1: p1}
}

// NewArc creates an arc segment. A negative radius is folded into the sweep,
// i.e. the arc keeps its start point and runs clockwise.
func NewArc(center curve.Point, radius, start, sweep float64) Segment {
	if radius < 0 {
		radius = -radius
		start += math.Pi
	}
	return Segment{Kind: Arc, Center: center, Radius: radius, Start: start, Sweep: sweep}
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	if s.Kind == Arc {
		return s.Radius * math.Abs(s.Sweep)
	}
	return s.P0.Distance(s.P1)
}

func (s Segment) polar(phi float64) curve.Point {
	return s.Center.Translate(curve.VecFromAngle(phi).Mul(s.Radius))
}

// StartPoint returns the first point in storage order.
func (s Segment) StartPoint() curve.Point {
	if s.Kind == Arc {
		return s.polar(s.Start)
	}
	return s.P0
}

// EndPoint returns the last point in storage order.
func (s Segment) EndPoint() curve.Point {
	if s.Kind == Arc {
		return s.polar(s.Start + s.Sweep)
	}
	return s.P1
}

// PointAt returns the point at distance d from the start point. d is clamped
// to [0, Length].
func (s Segment) PointAt(d float64) curve.Point {
	l := s.Length()
	if l <= _epsilon {
		return s.StartPoint()
	}
	f := math.Max(0, math.Min(1, d/l))
	if s.Kind == Arc {
		return s.polar(s.Start + s.Sweep*f)
	}
	return s.P0.Lerp(s.P1, f)
}

// TangentAt returns the direction of travel (start to end) at distance d.
func (s Segment) TangentAt(d float64) float64 {
	if s.Kind == Arc {
		l := s.Length()
		f := 0.0
		if l > _epsilon {
			f = math.Max(0, math.Min(1, d/l))
		}
		phi := s.Start + s.Sweep*f
		if s.Sweep < 0 {
			return phi - math.Pi/2
		}
		return phi + math.Pi/2
	}
	return s.P1.Sub(s.P0).Angle()
}

// Curvature is the signed curvature when travelling from start to end.
// Positive values turn left.
func (s Segment) Curvature() float64 {
	if s.Kind != Arc || s.Radius <= _epsilon {
		return 0
	}
	if s.Sweep < 0 {
		return -1 / s.Radius
	}
	return 1 / s.Radius
}

// Orientation reports GeometricallyFlipped for clockwise arcs.
func (s Segment) Orientation() Orientation {
	if s.Kind == Arc && s.Sweep < 0 {
		return GeometricallyFlipped
	}
	return 0
}

// Nearest finds the point of the segment closest to pt. It returns the
// distance along the segment from its start point, and the distance of pt
// from the segment.
func (s Segment) Nearest(pt curve.Point) (along, dist float64) {
	if s.Kind == Line {
		d2, t := curve.Line{P0: s.P0, P1: s.P1}.Nearest(pt, 0)
		return t * s.Length(), math.Sqrt(d2)
	}
	v := pt.Sub(s.Center)
	if v.Hypot() > _epsilon {
		delta := math.Mod(v.Angle()-s.Start, 2*math.Pi)
		if s.Sweep >= 0 && delta < 0 {
			delta += 2 * math.Pi
		} else if s.Sweep < 0 && delta > 0 {
			delta -= 2 * math.Pi
		}
		if math.Abs(delta) <= math.Abs(s.Sweep) {
			return s.Radius * math.Abs(delta), math.Abs(v.Hypot() - s.Radius)
		}
	}
	d0, d1 := pt.Distance(s.StartPoint()), pt.Distance(s.EndPoint())
	if d1 < d0 {
		return s.Length(), d1
	}
	return 0, d0
}

// Split cuts the segment at distance d from its start point.
func (s Segment) Split(d float64) (Segment, Segment) {
	l := s.Length()
	f := 0.0
	if l > _epsilon {
		f = math.Max(0, math.Min(1, d/l))
	}
	a, b := s, s
	if s.Kind == Arc {
		a.Sweep = s.Sweep * f
		b.Start = s.Start + a.Sweep
		b.Sweep = s.Sweep - a.Sweep
		return a, b
	}
	m := s.P0.Lerp(s.P1, f)
	a.P1, b.P0 = m, m
	return a, b
}

// Flip returns the segment with start and end swapped.
func (s Segment) Flip() Segment {
	if s.Kind == Arc {
		s.Start += s.Sweep
		s.Sweep = -s.Sweep
		return s
	}
	s.P0, s.P1 = s.P1, s.P0
	return s
}

// BoundingBox returns the axis aligned box around the segment.
func (s Segment) BoundingBox() curve.Rect {
	r := curve.NewRectFromPoints(s.StartPoint(), s.EndPoint())
	if s.Kind != Arc {
		return r
	}
	lo, hi := s.Start, s.Start+s.Sweep
	if hi < lo {
		lo, hi = hi, lo
	}
	// axis crossings of the circle lying inside the sweep
	for k := math.Ceil(lo / (math.Pi / 2)); k*math.Pi/2 <= hi; k++ {
		r = r.UnionPoint(s.polar(k * math.Pi / 2))
	}
	return r
}

func (s Segment) String() string {
	if s.Kind == Arc {
		return fmt.Sprintf("arc[c=%v r=%.4g a=%.2f° sweep=%.2f°]", s.Center, s.Radius,
			s.Start*180/math.Pi, s.Sweep*180/math.Pi)
	}
	return fmt.Sprintf("line[%v -> %v]", s.P0, s.P1)
}
