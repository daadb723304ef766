package spline

import (
	"fmt"
	"math"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/polyn"
	"honnef.co/go/curve"
)

// spiral is a curve whose curvature is a cubic polynomial of arc length.
// With u = s/S the normalized arc length,
//
//	κ(u) = (c0 + c1·u + c2·u² + c3·u³) / S
//	θ(u) = a0 + c0·u + c1·u²/2 + c2·u³/3 + c3·u⁴/4
//
// Fixing tangent and curvature at both ends leaves c2 and the length S free;
// these are found by Newton iteration so that the curve hits its end point.
type spiral struct {
	a     easement.Pair    // start point
	b     easement.Pair    // end point
	a0    float64          // start tangent
	k     polyn.Polynomial // normalized curvature κ(u)·S
	th    polyn.Polynomial // tangent angle θ(u)
	s     float64          // length
	iters int
}

const (
	spiralMaxIter = 50
	spiralSteps   = 128 // Simpson intervals over [0,1]
)

func (sp *spiral) theta(u float64) float64 {
	return sp.th.Eval(u)
}

// kappa returns the true (not normalized) curvature at u.
func (sp *spiral) kappa(u float64) float64 {
	return sp.k.Eval(u) / sp.s
}

// integrate returns ∫ e^{iθ(u)} du over [u0,u1] by Simpson's rule.
func (sp *spiral) integrate(u0, u1 float64, steps int) easement.Pair {
	if steps%2 == 1 {
		steps++
	}
	h := (u1 - u0) / float64(steps)
	var sum easement.Pair
	for k := 0; k <= steps; k++ {
		w := 2.0
		if k == 0 || k == steps {
			w = 1
		} else if k%2 == 1 {
			w = 4
		}
		sum += easement.P(1, 0).Rotated(sp.theta(u0 + float64(k)*h)).Scaled(w)
	}
	return sum.Scaled(h / 3)
}

// at returns the point of the spiral at u.
func (sp *spiral) at(u float64) easement.Pair {
	if u <= 0 {
		return sp.a
	}
	steps := int(math.Ceil(u*spiralSteps/2)) * 2
	return sp.a + sp.integrate(0, u, steps).Scaled(sp.s)
}

// setCoefficients derives c0, c1 and c3 from the end conditions.
func (sp *spiral) setCoefficients(c2, s, k0, k1, dtheta float64) {
	c0 := k0 * s
	c1 := 4*dtheta - 3*c0 - c2/3 - k1*s
	c3 := k1*s - c0 - c1 - c2
	sp.k, _ = polyn.New(c0, polyn.X{I: 1, C: c1}, polyn.X{I: 2, C: c2}, polyn.X{I: 3, C: c3})
	sp.th = sp.k.Integral(sp.a0)
	sp.s = s
}

// solveSpiral finds the spiral from a with tangent a0 and curvature k0 to b
// with tangent a1 and curvature k1.
//
// The total turning is only known modulo 2π. Near a half turn both ways
// round are tried, and the spiral turning least is kept. Spirals which coil
// more than a full turn beyond the tangent change are rejected.
func solveSpiral(a, b easement.Pair, a0, a1, k0, k1 float64) (*spiral, error) {
	dtheta := reduceAngle(a1 - a0)
	turns := []float64{dtheta}
	if math.Abs(dtheta) > math.Pi/2 {
		turns = append(turns, dtheta-math.Copysign(2*math.Pi, dtheta))
	}
	var best *spiral
	bestTurning := math.Inf(1)
	for _, dt := range turns {
		sp, err := solveSpiralTurn(a, b, a0, k0, k1, dt)
		if err != nil {
			continue
		}
		tn := sp.turning()
		if tn > math.Abs(dt)+2*math.Pi {
			tracer().Debugf("spiral turning %.4g by %.4g coils, rejected", dt, tn)
			continue
		}
		if tn < bestTurning {
			best, bestTurning = sp, tn
		}
	}
	if best == nil {
		tracer().Infof("spiral from %s to %s did not converge", a, b)
		return nil, fmt.Errorf("%w: from %s to %s", ErrNoConvergence, ptstring(a, false), ptstring(b, false))
	}
	return best, nil
}

// solveSpiralTurn solves for a spiral whose tangent turns by dtheta.
func solveSpiralTurn(a, b easement.Pair, a0, k0, k1, dtheta float64) (*spiral, error) {
	chord := (b - a).Abs()
	sp := &spiral{a: a, b: b, a0: a0}
	residual := func(x [2]float64) easement.Pair {
		sp.setCoefficients(x[0], x[1], k0, k1, dtheta)
		return a + sp.integrate(0, 1, spiralSteps).Scaled(x[1]) - b
	}
	x := [2]float64{0, chord}
	f := residual(x)
	for it := 0; it < spiralMaxIter; it++ {
		if f.Abs() < 1e-10*chord {
			sp.setCoefficients(x[0], x[1], k0, k1, dtheta)
			sp.iters = it
			tracer().Debugf("spiral converged after %d iterations: S=%.6g κS=%s", it, sp.s, sp.k)
			return sp, nil
		}
		var J [2]easement.Pair // columns of the Jacobian
		for j := range x {
			h := 1e-7 * math.Max(1, math.Abs(x[j]))
			xh := x
			xh[j] += h
			J[j] = (residual(xh) - f).Scaled(1 / h)
		}
		det := J[0].Cross(J[1])
		if det == 0 || math.IsNaN(det) {
			break
		}
		dx := [2]float64{
			-f.Cross(J[1]) / det,
			-J[0].Cross(f) / det,
		}
		lambda := 1.0
		improved := false
		for lambda > 1e-3 {
			xn := [2]float64{x[0] + lambda*dx[0], x[1] + lambda*dx[1]}
			if xn[1] > 0 {
				if fn := residual(xn); fn.Abs() < f.Abs() {
					x, f, improved = xn, fn, true
					break
				}
			}
			lambda /= 2
		}
		if !improved {
			break
		}
	}
	tracer().Debugf("spiral turning %.4g from %s to %s: residual %g", dtheta, a, b, f.Abs())
	return nil, ErrNoConvergence
}

// turning returns the total absolute turning of the spiral.
func (sp *spiral) turning() float64 {
	const samples = 64
	span, prev := 0.0, sp.theta(0)
	for i := 1; i <= samples; i++ {
		th := sp.theta(float64(i) / samples)
		span += math.Abs(th - prev)
		prev = th
	}
	return span
}

// cubics converts the spiral into G2 cubics, one for every π/8 of turning.
func (sp *spiral) cubics() []curve.CubicBez {
	n := max(1, int(math.Ceil(sp.turning()/(math.Pi/8)-1e-9)))
	cubics := make([]curve.CubicBez, n)
	p0 := sp.a
	for k := range cubics {
		u0, u1 := float64(k)/float64(n), float64(k+1)/float64(n)
		p3 := sp.b
		if k < n-1 {
			p3 = sp.at(u1)
		}
		t0 := easement.Direction(sp.theta(u0))
		t1 := easement.Direction(sp.theta(u1))
		l := sp.s * (u1 - u0)
		arm0, arm1, ok := g2Arms(p0.Point(), p3.Point(), t0, t1, sp.kappa(u0), sp.kappa(u1), l)
		if !ok {
			arm0, arm1 = l/3, l/3
		}
		cubics[k] = curve.CubicBez{
			P0: p0.Point(),
			P1: p0.Point().Translate(t0.Mul(arm0)),
			P2: p3.Point().Translate(t1.Mul(-arm1)),
			P3: p3.Point(),
		}
		p0 = p3
	}
	return cubics
}
