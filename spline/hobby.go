package spline

import (
	"math"

	easement "github.com/ankon/xtrkcad-sub003"
	"honnef.co/go/curve"
)

// solveHobby finds the control points of a run by John Hobby's algorithm,
// as MetaFont does for open paths. Ends without an explicit direction get a
// neutral curl. The run is returned as N-1 cubics.
func solveHobby(r *run) []curve.CubicBez {
	n := r.N()
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	theta := make([]float64, n+1)
	startOpen(r, u, v)
	buildEqs(r, u, v)
	endOpen(r, theta, u, v)
	return setControls(r, theta)
}

const curl = 1.0

func startOpen(r *run, u, v []float64) {
	if r.PostDir(0).IsNaN() {
		u[0] = (2*curl + 1) / (curl + 2)
		v[0] = -u[0] * r.psi(1)
	} else {
		u[0] = 0
		v[0] = reduceAngle(r.PostDir(0).Angle() - r.delta(0).Angle())
	}
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
}

// buildEqs sets up the tridiagonal system for the interior knots. With all
// tensions 1 the coefficients reduce to the lengths of adjacent chords.
func buildEqs(r *run, u, v []float64) {
	for i := 1; i < r.N()-1; i++ {
		A := 1 / r.d(i-1)
		B := 2 / r.d(i-1)
		C := 2 / r.d(i)
		D := 1 / r.d(i)
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*r.psi(i) - D*r.psi(i+1) - A*v[i-1]) / t
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
}

func endOpen(r *run, theta, u, v []float64) {
	last := r.N() - 1
	if r.PreDir(last).IsNaN() {
		u[last] = (curl + 2) / (2*curl + 1)
		if den := u[last-1] - u[last]; math.Abs(den) > _epsilon {
			theta[last] = v[last-1] / den
		}
	} else {
		theta[last] = reduceAngle(r.PreDir(last).Angle() - r.delta(last-1).Angle())
	}
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
		tracer().Debugf("theta.%d = %.4g°", i, theta[i]/easement.Deg2Rad)
	}
}

func setControls(r *run, theta []float64) []curve.CubicBez {
	cubics := make([]curve.CubicBez, r.N()-1)
	for i := range cubics {
		phi := -r.psi(i+1) - theta[i+1]
		post, pre := controlPoints(phi, theta[i], r.delta(i))
		cubics[i] = curve.CubicBez{
			P0: r.Z(i).Point(),
			P1: (r.Z(i) + post).Point(),
			P2: (r.Z(i+1) - pre).Point(),
			P3: r.Z(i + 1).Point(),
		}
	}
	return cubics
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sincos(theta) // in-angle
	sf, cf := math.Sincos(phi)   // out-angle
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// rho and sigma are limited to [0, 4], as MetaFont does.
func hobbyParamsRhoSigma(alpha, beta float64) (float64, float64) {
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	return clamp(rho, 0, 4), clamp(sigma, 0, 4)
}

// Calculate the control point offsets between z.i and z.[i+1].
func controlPoints(phi, theta float64, dvec easement.Pair) (easement.Pair, easement.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho, sigma := hobbyParamsRhoSigma(alpha, beta)
	post := dvec.Rotated(theta).Scaled(rho / 3)
	pre := dvec.Rotated(-phi).Scaled(sigma / 3)
	return post, pre
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
