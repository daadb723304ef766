/*
Package clearance checks that tracks keep their distance.

The footprint of a track is the band of a given width around its centreline,
as a polygon. Two tracks are in each other's way if their footprints
intersect with a non-zero area. Touching footprints are fine.
*/
package clearance

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// arcStep is the largest angle an arc is sampled with.
const arcStep = 5 * math.Pi / 180

// minArea is the smallest intersection counted as an overlap.
const minArea = 1e-6

// Footprint returns the band of the given width around a tree's centreline,
// as a single contour.
func Footprint(n seg.Node, width float64) polyclip.Polygon {
	var left, right polyclip.Contour
	half := width / 2
	add := func(pt curve.Point, tangent float64) {
		nv := easement.LeftNormal(tangent).Mul(half)
		l, r := pt.Translate(nv), pt.Translate(nv.Negate())
		left.Add(polyclip.Point{X: l.X, Y: l.Y})
		right.Add(polyclip.Point{X: r.X, Y: r.Y})
	}
	seg.Walk(n, func(s seg.Segment) bool {
		l := s.Length()
		if l <= easement.Epsilon {
			return true
		}
		steps := 1
		if s.Kind == seg.Arc {
			steps = max(1, int(math.Ceil(math.Abs(s.Sweep)/arcStep)))
		}
		first := 0
		if len(left) > 0 {
			first = 1
		}
		for i := first; i <= steps; i++ {
			d := l * float64(i) / float64(steps)
			add(s.PointAt(d), s.TangentAt(d))
		}
		return true
	})
	if len(left) < 2 {
		return polyclip.Polygon{}
	}
	contour := make(polyclip.Contour, 0, 2*len(left))
	contour = append(contour, left...)
	for i := len(right) - 1; i >= 0; i-- {
		contour = append(contour, right[i])
	}
	return polyclip.Polygon{contour}
}

// Area returns the area enclosed by the contours of p.
func Area(p polyclip.Polygon) float64 {
	area := 0.0
	for _, c := range p {
		a := 0.0
		for i := range c {
			j := (i + 1) % len(c)
			a += c[i].X*c[j].Y - c[j].X*c[i].Y
		}
		area += math.Abs(a) / 2
	}
	return area
}

// Overlaps tells whether the footprints of two trees of the given width
// intersect, and by how much.
func Overlaps(a, b seg.Node, width float64) (bool, float64) {
	fa, fb := Footprint(a, width), Footprint(b, width)
	if len(fa) == 0 || len(fb) == 0 {
		return false, 0
	}
	if !fa.BoundingBox().Overlaps(fb.BoundingBox()) {
		return false, 0
	}
	area := Area(fa.Construct(polyclip.INTERSECTION, fb))
	tracer().Debugf("footprint overlap area %g", area)
	return area > minArea, area
}
