package edit

import (
	"fmt"
	"math"

	"honnef.co/go/curve"

	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/cornu"
	"github.com/ankon/xtrkcad-sub003/traverse"
)

// Split cuts a shape in two at the point nearest to pos. The point is mapped
// back to a Bézier parameter by sampling, and the Bézier is subdivided
// there. Pieces shorter than Config.MinLength are not created; Split then
// returns a *SliverError naming the side.
func (ed Editor) Split(shape Shape, pos curve.Point) (Shape, Shape, error) {
	conf := ed.conf()
	switch s := shape.(type) {
	case *bezier.Curve:
		loc, err := traverse.Locate(s.Node(), pos, conf.OnCurveTolerance)
		if err != nil {
			return nil, nil, err
		}
		a, b := s.Subdivide(sampleT(s.Cubic(), loc.Point, conf.SplitSamples))
		if err := checkSlivers(a.Length, b.Length, conf.MinLength); err != nil {
			return nil, nil, err
		}
		tracer().Infof("split %s at %v", s, loc.Point)
		return a, b, nil
	case *cornu.Curve:
		return ed.splitCornu(s, pos)
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrUnsupported, shape)
}

// splitCornu cuts a compound curve inside the Bézier curve holding pos.
// A cut closer than Config.MinLength to the end of that Bézier is moved to
// the junction with its neighbour, so that no piece holds a degenerate
// curve. The cut ends take their tangents from the curves meeting there.
func (ed Editor) splitCornu(c *cornu.Curve, pos curve.Point) (Shape, Shape, error) {
	conf := ed.conf()
	if len(c.Curves) == 0 {
		return nil, nil, fmt.Errorf("%w: compound curve without curves", ErrUnsupported)
	}
	loc, err := traverse.Locate(c.Node(), pos, conf.OnCurveTolerance)
	if err != nil {
		return nil, nil, err
	}
	k := loc.Path()[0]
	bz := c.Curves[k]
	a, b := bz.Subdivide(sampleT(bz.Cubic(), loc.Point, conf.SplitSamples))
	var left, right []*bezier.Curve
	switch {
	case a.Length < conf.MinLength && k > 0:
		left, right = cloneCurves(c.Curves[:k]), cloneCurves(c.Curves[k:])
	case b.Length < conf.MinLength && k < len(c.Curves)-1:
		left, right = cloneCurves(c.Curves[:k+1]), cloneCurves(c.Curves[k+1:])
	default:
		left = append(cloneCurves(c.Curves[:k]), a)
		right = append([]*bezier.Curve{b}, cloneCurves(c.Curves[k+1:])...)
	}
	l0, l1 := 0.0, 0.0
	for _, x := range left {
		l0 += x.Length
	}
	for _, x := range right {
		l1 += x.Length
	}
	if err := checkSlivers(l0, l1, conf.MinLength); err != nil {
		return nil, nil, err
	}
	f := c.Fitter()
	cut0 := cornu.End{EndpointConstraint: left[len(left)-1].End()}
	cut1 := cornu.End{EndpointConstraint: right[0].Start()}
	tracer().Infof("split %s at %v into %d and %d curves", c, cut0.Pos, len(left), len(right))
	return f.Assemble(c.End[0], cut0, left), f.Assemble(cut1, c.End[1], right), nil
}

func cloneCurves(curves []*bezier.Curve) []*bezier.Curve {
	out := make([]*bezier.Curve, len(curves))
	for i, x := range curves {
		out[i] = x.Clone()
	}
	return out
}

// sampleT returns the parameter of the sample point of cb nearest to pt.
func sampleT(cb curve.CubicBez, pt curve.Point, samples int) float64 {
	if samples < 2 {
		samples = 2
	}
	best, bestD := 0.0, math.Inf(1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		if d := cb.Eval(t).Distance(pt); d < bestD {
			best, bestD = t, d
		}
	}
	return best
}

func checkSlivers(l0, l1, minLength float64) error {
	if l0 < minLength {
		return &SliverError{Side: 0, Length: l0}
	}
	if l1 < minLength {
		return &SliverError{Side: 1, Length: l1}
	}
	return nil
}
