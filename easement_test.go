package easement

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if Zap(-a) != 0 {
		t.Errorf("Expected Zap to clear tiny value")
	}
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.Equal(Origin) {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	pt := p.Point()
	assert.Equal(t, curve.Pt(3, 2), pt)
	assert.Equal(t, p, PairOf(pt))
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 1).Shifted(P(-1, -1)).Zap().Equal(Origin) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
	if !P(1, 0).Rotated(180 * Deg2Rad).Shifted(P(1, 0)).Zap().Equal(Origin) {
		t.Errorf("Expected result to be origin, is not")
	}
	q := P(2, 1).Rotatedaround(P(1, 1), 90*Deg2Rad)
	if !q.Equal(P(1, 2)) {
		t.Errorf("Expected (2,1) rotated around (1,1) by 90° to be (1,2), is %v", q)
	}
}

func TestNormalizeAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeAngle(3*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, 0.1, NormalizeAngle(0.1+8*math.Pi), 1e-9)
	assert.InDelta(t, -20*Deg2Rad, AngleDiff(350*Deg2Rad, 10*Deg2Rad), 1e-9)
}

func TestLeftNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	n := LeftNormal(0)
	assert.InDelta(t, 0, n.X, 1e-12)
	assert.InDelta(t, 1, n.Y, 1e-12)
	n = LeftNormal(90 * Deg2Rad)
	assert.InDelta(t, -1, n.X, 1e-12)
	assert.InDelta(t, 0, n.Y, 1e-12)
}
