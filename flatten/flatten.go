/*
Package flatten approximates cubic Bézier curves by sequences of circular
arcs and straight lines.

A cubic is approximated by the circle through its start, middle and end
point. If the curve strays from that circle by more than the tolerance, it is
subdivided by de Casteljau and both halves are approximated in turn. Nearly
straight pieces, and pieces whose circle is too large to be meaningful,
become lines.

The tolerance depends on what the curve is used for and cannot be changed by
clients: track centrelines are flattened much finer than plain drawing lines.
*/
package flatten

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// Kind selects the flattening tolerance.
type Kind uint8

const (
	Track Kind = iota // track centrelines, tolerance 0.001
	Line              // plain lines, tolerance 0.01
)

// Tolerance returns the maximum deviation allowed between a cubic and its
// approximation.
func (k Kind) Tolerance() float64 {
	if k == Line {
		return 0.01
	}
	return 0.001
}

func (k Kind) String() string {
	if k == Line {
		return "line"
	}
	return "track"
}

const (
	maxDepth  = 12
	maxRadius = 100000.0
	tiny      = 1e-9
)

// Cubic flattens c into an ordered list of segments running from c.P0 to
// c.P3. A curve collapsed to a single point yields one line of length zero.
func Cubic(c curve.CubicBez, kind Kind) []seg.Segment {
	if degenerate(c) {
		return []seg.Segment{seg.NewLine(c.P0, c.P3)}
	}
	segs := make([]seg.Segment, 0, 8)
	segs = flatten(c, kind.Tolerance(), 0, segs)
	tracer().Debugf("flattened cubic %v into %d segments", c, len(segs))
	return segs
}

func flatten(c curve.CubicBez, tol float64, depth int, segs []seg.Segment) []seg.Segment {
	s, dev := approximate(c)
	if dev <= tol || depth >= maxDepth {
		if depth >= maxDepth && dev > tol {
			tracer().Debugf("flatten: giving up at depth %d, deviation %g", depth, dev)
		}
		return append(segs, s)
	}
	a, b := c.Subdivide()
	segs = flatten(a, tol, depth+1, segs)
	return flatten(b, tol, depth+1, segs)
}

// approximate fits one segment to c and measures the deviation of c from it
// at the quarter points.
func approximate(c curve.CubicBez) (seg.Segment, float64) {
	p0, pm, p1 := c.P0, c.Eval(0.5), c.P3
	q := [2]curve.Point{c.Eval(0.25), c.Eval(0.75)}
	chord := p1.Sub(p0)
	cross := pm.Sub(p0).Cross(p1.Sub(pm))
	if chord.Hypot2() > tiny && math.Abs(cross) > 1e-12*chord.Hypot2() {
		if center, r, ok := easement.Circumcircle(p0, pm, p1); ok {
			if r < maxRadius {
				dev := 0.0
				for _, x := range q {
					dev = math.Max(dev, math.Abs(x.Distance(center)-r))
				}
				a0 := p0.Sub(center).Angle()
				sweep := p1.Sub(center).Angle() - a0
				if cross > 0 {
					for sweep <= 0 {
						sweep += 2 * math.Pi
					}
				} else {
					for sweep >= 0 {
						sweep -= 2 * math.Pi
					}
				}
				return seg.NewArc(center, r, a0, sweep), dev
			}
		}
	}
	l := seg.NewLine(p0, p1)
	dev := 0.0
	for _, x := range q {
		_, d := l.Nearest(x)
		dev = math.Max(dev, d)
	}
	if _, d := l.Nearest(pm); d > dev {
		dev = d
	}
	return l, dev
}

func degenerate(c curve.CubicBez) bool {
	return c.P0.Distance(c.P1) <= tiny && c.P0.Distance(c.P2) <= tiny && c.P0.Distance(c.P3) <= tiny
}
