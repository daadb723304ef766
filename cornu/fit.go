/*
Package cornu fits easements between two track ends.

An easement is a compound curve: a chain of Bézier curves whose curvature
changes smoothly from that of the first end to that of the second. It is
found by handing six knots to the spline solver: the two true ends, and two
phantom knots beyond each end which fix the tangent and curvature there. For
a straight end the phantoms lie on the straight line; for a curved end they
lie on its circle. Only the part of the solution between the true ends is
kept.
*/
package cornu

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/flatten"
	"github.com/ankon/xtrkcad-sub003/spline"
)

// tracer writes to trace with key 'easement'
func tracer() tracing.Trace {
	return tracing.Select("easement")
}

var (
	// ErrDegenerateInput is returned for ends which are too close together or
	// carry invalid numbers. The solver is not called.
	ErrDegenerateInput = errors.New("degenerate easement input")
	// ErrNoSolution is returned when the solver fails or yields no usable curve.
	ErrNoSolution = errors.New("no easement solution")
)

// FitError tells which end, if any, made a fit fail. It unwraps to
// ErrDegenerateInput or ErrNoSolution, and to the underlying cause.
type FitError struct {
	End   int // 0 or 1, -1 if not attributable to an end
	Err   error
	Cause error
}

func (e *FitError) Error() string {
	s := e.Err.Error()
	if e.End >= 0 {
		s = fmt.Sprintf("%s at end %d", s, e.End)
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *FitError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func fitError(end int, sentinel, cause error) error {
	err := &FitError{End: end, Err: sentinel, Cause: cause}
	tracer().Errorf("fit failed: %v", err)
	return err
}

// End is one end of a compound curve. A bound end is dictated by the track
// connected there.
type End struct {
	easement.EndpointConstraint
	Bound bool
}

// Fitter fits compound curves. The zero value uses the default configuration
// and spline.Solve.
type Fitter struct {
	Config easement.Config
	Solver spline.Func
}

// NewFitter creates a fitter for a configuration.
func NewFitter(conf easement.Config) Fitter {
	return Fitter{Config: conf, Solver: spline.Solve}
}

func (f Fitter) conf() easement.Config {
	if f.Config == (easement.Config{}) {
		return easement.DefaultConfig()
	}
	return f.Config
}

func (f Fitter) solve(knots []spline.Knot) (spline.Path, error) {
	if f.Solver == nil {
		return spline.Solve(knots)
	}
	return f.Solver(knots)
}

// Fit finds the easement from end0 to end1. Both angles are directions of
// travel from end0 towards end1.
func (f Fitter) Fit(end0, end1 easement.EndpointConstraint) (*Curve, error) {
	return f.fit([2]End{{EndpointConstraint: end0}, {EndpointConstraint: end1}})
}

func (f Fitter) fit(ends [2]End) (*Curve, error) {
	for i, e := range ends {
		if err := e.Validate(); err != nil {
			return nil, fitError(i, ErrDegenerateInput, err)
		}
	}
	if ends[0].Pos.Distance(ends[1].Pos) <= easement.Epsilon {
		return nil, fitError(-1, ErrDegenerateInput, fmt.Errorf("ends coincide at %v", ends[0].Pos))
	}
	knots := f.knots(ends[0].EndpointConstraint, ends[1].EndpointConstraint)
	path, err := f.solve(knots)
	if err != nil {
		return nil, fitError(-1, ErrNoSolution, err)
	}
	if len(path.Marks) != len(knots) {
		return nil, fitError(-1, ErrNoSolution, fmt.Errorf("solver marked %d of %d knots",
			len(path.Marks), len(knots)))
	}
	cubics := path.Between(2, 3)
	if len(cubics) == 0 {
		return nil, fitError(-1, ErrNoSolution, errors.New("no curve between the ends"))
	}
	curves := make([]*bezier.Curve, len(cubics))
	for i, cb := range cubics {
		c := &bezier.Curve{Pos: [4]curve.Point{cb.P0, cb.P1, cb.P2, cb.P3}, Kind: flatten.Track}
		if !c.IsFinite() {
			return nil, fitError(-1, ErrNoSolution, fmt.Errorf("solver returned NaN in element %d", i))
		}
		c.FixUp()
		curves[i] = c
	}
	cc := &Curve{End: ends, Curves: curves, fitter: f}
	tracer().Infof("fitted %s -> %s with %d curves, length %.4g", ends[0].EndpointConstraint,
		ends[1].EndpointConstraint, len(curves), cc.Length())
	return cc, nil
}

// knots places the true ends at indices 2 and 3, with phantom knots before
// end0 and after end1.
func (f Fitter) knots(end0, end1 easement.EndpointConstraint) []spline.Knot {
	conf := f.conf()
	far0, near0 := phantoms(end0, conf, -1)
	near1, far1 := phantoms(end1, conf, 1)
	return []spline.Knot{
		{Pt: far0, Tag: spline.Open},
		{Pt: near0, Tag: spline.G2},
		{Pt: end0.Pos, Tag: spline.Right},
		{Pt: end1.Pos, Tag: spline.Left},
		{Pt: near1, Tag: spline.G2},
		{Pt: far1, Tag: spline.EndOpen},
	}
}

// phantoms returns two phantom knots beyond an end, in travel order. dir is
// -1 to place them before the end and +1 to place them after it.
func phantoms(e easement.EndpointConstraint, conf easement.Config, dir float64) (curve.Point, curve.Point) {
	var near, far curve.Point
	if e.IsStraight() {
		t := easement.Direction(e.Angle)
		near = e.Pos.Translate(t.Mul(dir * conf.PhantomNear))
		far = e.Pos.Translate(t.Mul(dir * conf.PhantomFar))
	} else {
		// sense of motion around the center
		sense := math.Copysign(1, e.Pos.Sub(e.Center).Cross(easement.Direction(e.Angle)))
		near = e.Pos.Transform(curve.RotateAbout(dir*sense*conf.PhantomNearAngle, e.Center))
		far = e.Pos.Transform(curve.RotateAbout(dir*sense*conf.PhantomFarAngle, e.Center))
	}
	if dir < 0 {
		return far, near
	}
	return near, far
}
