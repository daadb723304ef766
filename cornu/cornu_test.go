package cornu

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/metrics"
	"github.com/ankon/xtrkcad-sub003/seg"
	"github.com/ankon/xtrkcad-sub003/spline"
)

func reverseCurve(t *testing.T) *Curve {
	f := NewFitter(easement.DefaultConfig())
	c, err := f.Fit(easement.Curved(curve.Pt(0, 0), 0, 50), easement.Curved(curve.Pt(200, 100), 0, -50))
	require.NoError(t, err)
	return c
}

func TestStraightEasement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	var f Fitter
	c, err := f.Fit(easement.Straight(curve.Pt(0, 0), 0), easement.Straight(curve.Pt(100, 0), 0))
	require.NoError(t, err)
	leaves := seg.Leaves(c.Node())
	require.Len(t, leaves, 1)
	assert.Equal(t, seg.Line, leaves[0].Kind)
	assert.InDelta(t, 100, c.Length(), 1e-9)
	assert.Equal(t, easement.RadiusSentinel, c.MinRadius())
	assert.InDelta(t, 0, metrics.TotalWindingArc(c.Node()), 1e-12)
	assert.Empty(t, c.Validate())
}

func TestQuarterArc(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := NewFitter(easement.DefaultConfig())
	c, err := f.Fit(easement.Curved(curve.Pt(0, 0), 0, 50), easement.Curved(curve.Pt(50, 50), math.Pi/2, 50))
	require.NoError(t, err)
	assert.InDelta(t, 50, c.MinRadius(), 0.1)
	assert.InDelta(t, math.Pi/2, metrics.TotalWindingArc(c.Node()), 1e-3)
	assert.InDelta(t, 25*math.Pi, c.Length(), 0.05)
}

func TestReverseCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := reverseCurve(t)
	r := c.MinRadius()
	if r < 49 || r > 55 {
		t.Errorf("expected min radius near 50, got %g", r)
	}
	rate, _ := metrics.MaxRateOfChangeOfCurvature(c.Node(), 1.0/50)
	assert.False(t, math.IsNaN(rate))
	// the curvature runs from 1/50 to -1/50; its cubic profile peaks at
	// about three times the mean rate
	mean := (1.0/50 + 1.0/50) / c.Length()
	if rate > 4*mean {
		t.Errorf("rate of change of curvature %g exceeds 4 × %g", rate, mean)
	}
	assert.Greater(t, rate, mean)
	assert.InDelta(t, 0, metrics.TotalWindingArc(c.Node()), 1e-3)
	// end tangents are exact
	assert.InDelta(t, 0, c.Curves[0].Angle0, 1e-6)
	assert.InDelta(t, 0, c.Curves[len(c.Curves)-1].Angle3, 1e-6)
	first, last, ok := seg.Ends(c.Node())
	require.True(t, ok)
	assert.InDelta(t, 0, first.Distance(curve.Pt(0, 0)), 1e-9)
	assert.InDelta(t, 0, last.Distance(curve.Pt(200, 100)), 1e-9)
	assert.NoError(t, seg.CheckContinuity(c.Node(), 1e-6))
}

func TestHalfTurn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var f Fitter
	c, err := f.Fit(easement.Straight(curve.Pt(0, 0), 0), easement.Straight(curve.Pt(0, 100), math.Pi))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, metrics.TotalWindingArc(c.Node()), 0.01)
	assert.InDelta(t, 205.73, c.Length(), 0.5)
	r := c.MinRadius()
	if r < 40 || r > 48 {
		t.Errorf("expected min radius near 44, got %g", r)
	}
	assert.LessOrEqual(t, len(c.Curves), 8)
	assert.InDelta(t, 0, c.Curves[0].Angle0, 1e-6)
	assert.InDelta(t, math.Pi, math.Abs(c.Curves[len(c.Curves)-1].Angle3), 1e-6)
	assert.Empty(t, c.Validate())

	// a wider turn stays a single sweep too
	c, err = f.Fit(easement.Straight(curve.Pt(0, 0), 0), easement.Straight(curve.Pt(-40, 100), 5*math.Pi/4))
	require.NoError(t, err)
	assert.InDelta(t, 5*math.Pi/4, metrics.TotalWindingArc(c.Node()), 0.01)
	assert.InDelta(t, 407.6, c.Length(), 1)
}

func TestDegenerateInput(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var f Fitter
	_, err := f.Fit(easement.Straight(curve.Pt(1, 1), 0), easement.Straight(curve.Pt(1, 1), 0))
	assert.ErrorIs(t, err, ErrDegenerateInput)
	_, err = f.Fit(easement.Straight(curve.Pt(0, 0), math.NaN()), easement.Straight(curve.Pt(1, 1), 0))
	var fe *FitError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 0, fe.End)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	assert.ErrorIs(t, err, easement.ErrInvalidEndpoint)
}

func TestSolverFailures(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	end0, end1 := easement.Straight(curve.Pt(0, 0), 0), easement.Straight(curve.Pt(100, 0), 0)
	f := Fitter{Solver: func([]spline.Knot) (spline.Path, error) {
		return spline.Path{}, spline.ErrNoConvergence
	}}
	_, err := f.Fit(end0, end1)
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.ErrorIs(t, err, spline.ErrNoConvergence)
	f.Solver = func(knots []spline.Knot) (spline.Path, error) {
		path, err := spline.Solve(knots)
		path.BezPath[path.Marks[3]].P0 = curve.Pt(math.NaN(), 0)
		return path, err
	}
	_, err = f.Fit(end0, end1)
	assert.ErrorIs(t, err, ErrNoSolution)
	f.Solver = func(knots []spline.Knot) (spline.Path, error) {
		path, err := spline.Solve(knots)
		path.Marks[3] = path.Marks[2]
		return path, err
	}
	_, err = f.Fit(end0, end1)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestFailedRefitKeepsCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	calls := 0
	f := Fitter{Solver: func(knots []spline.Knot) (spline.Path, error) {
		calls++
		if calls > 1 {
			return spline.Path{}, spline.ErrNoConvergence
		}
		return spline.Solve(knots)
	}}
	c, err := f.Fit(easement.Straight(curve.Pt(0, 0), 0), easement.Straight(curve.Pt(100, 0), 0))
	require.NoError(t, err)
	curves := c.Curves
	err = c.Bind(1, easement.Straight(curve.Pt(100, 10), 0))
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.Equal(t, curve.Pt(100, 0), c.End[1].Pos)
	assert.False(t, c.End[1].Bound)
	assert.Equal(t, curves, c.Curves)
	assert.Error(t, c.Bind(2, easement.Straight(curve.Pt(0, 0), 0)))
}

func TestBindAndRebuild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := reverseCurve(t)
	require.NoError(t, c.Bind(0, easement.Curved(curve.Pt(0, 0), 0, 60)))
	assert.True(t, c.End[0].Bound)
	assert.InDelta(t, 60, c.End[0].Radius, 1e-12)
	require.NoError(t, c.AdjustEndPoint(1, easement.Curved(curve.Pt(210, 100), 0, -50)))
	assert.True(t, c.End[0].Bound)
	length := c.Length()
	require.NoError(t, c.Rebuild())
	assert.InDelta(t, length, c.Length(), 1e-9)
}

func TestTransformAndReverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := reverseCurve(t)
	length := c.Length()
	require.NoError(t, c.Transform(curve.Translate(curve.Vec(10, -5))))
	assert.InDelta(t, length, c.Length(), 1e-6)
	assert.Equal(t, curve.Pt(10, -5), c.End[0].Pos)
	box := c.BoundingBox()
	assert.InDelta(t, 10, box.MinX(), 1e-6)
	assert.InDelta(t, 210, box.MaxX(), 1e-6)

	require.NoError(t, c.Transform(curve.Reflect(curve.Pt(0, 0), curve.Vec(1, 0))))
	assert.InDelta(t, -50, c.End[0].Radius, 1e-9)

	d := c.Clone()
	d.Reverse()
	assert.Equal(t, c.End[1].Pos, d.End[0].Pos)
	assert.InDelta(t, math.Pi, math.Abs(d.End[0].Angle), 1e-9)
	assert.InDelta(t, -c.End[1].Radius, d.End[0].Radius, 1e-12)
	assert.InDelta(t, c.Length(), d.Length(), 1e-6)
	assert.InDelta(t, -metrics.TotalWindingArc(c.Node()), metrics.TotalWindingArc(d.Node()), 1e-6)
}

func TestPhantoms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := easement.DefaultConfig()
	far, near := phantoms(easement.Straight(curve.Pt(0, 0), 0), conf, -1)
	assert.Equal(t, curve.Pt(-10, 0), far)
	assert.Equal(t, curve.Pt(-5, 0), near)
	near, far = phantoms(easement.Straight(curve.Pt(0, 0), math.Pi/2), conf, 1)
	assert.InDelta(t, 5, near.Y, 1e-12)
	assert.InDelta(t, 10, far.Y, 1e-12)
	e := easement.Curved(curve.Pt(0, 0), 0, 50)
	far, near = phantoms(e, conf, -1)
	assert.InDelta(t, 50, far.Distance(e.Center), 1e-9)
	assert.InDelta(t, 50, near.Distance(e.Center), 1e-9)
	assert.Less(t, far.X, near.X)
	assert.Less(t, near.X, 0.0)
	// clockwise end: phantoms after the end still lie ahead
	e = easement.Curved(curve.Pt(0, 0), 0, -50)
	near, far = phantoms(e, conf, 1)
	assert.Greater(t, far.X, near.X)
	assert.Greater(t, near.X, 0.0)
	assert.Less(t, near.Y, 0.0)
}
