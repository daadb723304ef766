package bezier

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/flatten"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// arm length making a cubic close to a quarter circle
const kappa = 0.5522847498

func quarter() *Curve {
	return New(curve.Pt(0, 0), curve.Pt(50*kappa, 0), curve.Pt(50, 50-50*kappa), curve.Pt(50, 50),
		flatten.Track)
}

func TestStraightCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := New(curve.Pt(0, 0), curve.Pt(30, 0), curve.Pt(70, 0), curve.Pt(100, 0), flatten.Track)
	require.Len(t, c.Segs, 1)
	assert.Equal(t, seg.Line, c.Segs[0].Kind)
	assert.InDelta(t, 100, c.Length, 1e-9)
	assert.Equal(t, easement.RadiusSentinel, c.MinRadius)
	assert.Equal(t, 0.0, c.Angle0)
	assert.Equal(t, 0.0, c.Angle3)
	assert.True(t, c.Start().IsStraight())
}

func TestFixUpIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	before := c.Clone()
	c.FixUp()
	assert.Equal(t, before.Segs, c.Segs)
	assert.Equal(t, before.Length, c.Length)
	assert.Equal(t, before.MinRadius, c.MinRadius)
	assert.Equal(t, before.Angle0, c.Angle0)
	assert.Equal(t, before.Angle3, c.Angle3)
}

func TestQuarterCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	assert.InDelta(t, 0, c.Angle0, 1e-12)
	assert.InDelta(t, math.Pi/2, c.Angle3, 1e-12)
	assert.InDelta(t, 50, c.MinRadius, 1)
	assert.InDelta(t, c.MathLength(), c.Length, 0.01)
	if err := seg.CheckContinuity(c.Node(), 1e-9); err != nil {
		t.Error(err)
	}
	end := c.End()
	assert.InDelta(t, 50, end.Radius, 1.5)
	assert.NoError(t, end.Validate())
}

func TestTangentFallback(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// first control coincides with P0
	c := New(curve.Pt(0, 0), curve.Pt(0, 0), curve.Pt(10, 10), curve.Pt(20, 10), flatten.Line)
	assert.InDelta(t, math.Pi/4, c.Angle0, 1e-12)
	assert.Equal(t, flatten.Line, c.Kind)
}

func TestReverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	length := c.Length
	c.Reverse()
	assert.Equal(t, curve.Pt(50, 50), c.Pos[0])
	assert.InDelta(t, -math.Pi/2, c.Angle0, 1e-12)
	assert.InDelta(t, math.Pi, math.Abs(c.Angle3), 1e-12)
	assert.InDelta(t, length, c.Length, 1e-9)
	assert.Less(t, Curvature(c.Cubic(), 0.5), 0.0)
}

func TestTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	c.Transform(curve.Translate(curve.Vec(10, 0)).Mul(curve.Rotate(math.Pi / 2)))
	p := c.Pos[3]
	assert.InDelta(t, -40, p.X, 1e-9)
	assert.InDelta(t, 50, p.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, c.Angle0, 1e-12)
	c.Transform(curve.Scale(2, 2))
	assert.InDelta(t, 100, c.MinRadius, 2)
}

func TestAdjustEndPoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	a3 := c.Angle3
	require.NoError(t, c.AdjustEndPoint(1, curve.Pt(60, 55)))
	assert.Equal(t, curve.Pt(60, 55), c.Pos[3])
	assert.InDelta(t, a3, c.Angle3, 1e-12)
	_, last, ok := seg.Ends(c.Node())
	require.True(t, ok)
	assert.InDelta(t, 0, last.Distance(curve.Pt(60, 55)), 1e-9)
	assert.Error(t, c.AdjustEndPoint(2, curve.Pt(0, 0)))
}

func TestSubdivide(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	a, b := c.Subdivide(0.5)
	assert.Equal(t, a.Pos[3], b.Pos[0])
	assert.InDelta(t, c.Length, a.Length+b.Length, 1e-3)
	assert.InDelta(t, a.Angle3, b.Angle0, 1e-9)
	box := c.BoundingBox()
	assert.InDelta(t, 0, box.MinX(), 1e-9)
	assert.InDelta(t, 50, box.MaxY(), 1e-9)
	assert.True(t, c.IsFinite())
}
