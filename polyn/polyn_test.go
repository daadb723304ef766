package polyn

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotPolynomial(p Polynomial) map[int]float64 {
	m := make(map[int]float64)
	it := p.Terms.Iterator()
	for it.Next() {
		m[it.Key().(int)] = it.Value().(float64)
	}
	return m
}

// --- Tests -----------------------------------------------------------------

func TestPolynConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	c, isconst := p.IsConstant()
	if !isconst || c != 0.5 {
		t.Error("did not recognize constant polynomial as constant")
	}
	p.SetTerm(1, 2)
	_, isconst = p.IsConstant()
	if isconst {
		t.Error("did falsely recognize non-constant polynomial as constant")
	}
}

func TestNewRejectsConstantTerms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := New(1, X{0, 5}, X{2, 3})
	assert.Error(t, err)
	assert.Equal(t, 1.0, p.GetCoeffForTerm(0))
	assert.Equal(t, 3.0, p.GetCoeffForTerm(2))
}

func TestZapPolyn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	p.SetTerm(1, 0.0000000005)
	p.Zap()
	_, isconst := p.IsConstant()
	if !isconst {
		t.Error("Expected polynomial to be of constant type, isn't")
	}
	assert.Equal(t, 1, p.Terms.Size())
}

func TestPolynAddSubtract(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(10, X{1, 7}, X{2, 2})
	q, _ := New(4, X{1, 2}, X{3, 9})
	pBefore, qBefore := snapshotPolynomial(p), snapshotPolynomial(q)
	r := p.Subtract(q)
	assert.Equal(t, []float64{6, 5, 2, -9}, r.Coefficients())
	r = p.Add(q)
	assert.Equal(t, []float64{14, 9, 2, 9}, r.Coefficients())
	assert.Equal(t, pBefore, snapshotPolynomial(p), "mutated left operand")
	assert.Equal(t, qBefore, snapshotPolynomial(q), "mutated right operand")
}

func TestPolynMultiply(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 1}) // 1 + u
	q, _ := New(-1, X{1, 1})
	r := p.Multiply(q)
	assert.Equal(t, []float64{-1, 0, 1}, r.Coefficients())
	s := p.Scale(-2)
	if s.GetCoeffForTerm(1) != -2.0 {
		t.Errorf("expected -2u, got %s", s)
	}
	assert.Equal(t, 1.0, p.GetCoeffForTerm(1))
}

func TestEval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(2, X{1, -3}, X{3, 0.5}) // 2 - 3u + u³/2
	for _, u := range []float64{-2, 0, 0.25, 1, 3} {
		want := 2 - 3*u + 0.5*u*u*u
		assert.InDelta(t, want, p.Eval(u), 1e-12, "u=%g", u)
	}
	var zero Polynomial
	assert.Equal(t, 0.0, zero.Eval(3))
	sparse, _ := New(0, X{4, 1})
	assert.InDelta(t, 16.0, sparse.Eval(2), 1e-12)
}

func TestCalculus(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	k, _ := New(1, X{1, 2}, X{2, 3}) // 1 + 2u + 3u²
	th := k.Integral(math.Pi)
	require.Equal(t, 3, th.Degree())
	assert.Equal(t, []float64{math.Pi, 1, 1, 1}, th.Coefficients())
	assert.Equal(t, k.Coefficients(), th.Derivative().Coefficients())
	assert.InDelta(t, math.Pi+3, th.Eval(1), 1e-12)
}

func TestDegreeIgnoresZeroTerms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 2}, X{5, 0})
	assert.Equal(t, 1, p.Degree())
	assert.Equal(t, 0, NewConstantPolynomial(0).Degree())
}

func TestPolynString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(-1, X{1, 2}, X{3, -0.5})
	assert.Equal(t, "-1 + 2u - 0.5u^3", p.String())
	assert.Equal(t, "0", NewConstantPolynomial(0).String())
}
