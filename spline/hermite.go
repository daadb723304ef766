package spline

import (
	"math"

	"honnef.co/go/curve"
)

// g2Arms finds the arm lengths a and b of a cubic from p0 to p3 with unit
// tangents t0, t1 at its ends, such that the cubic has curvature k0 at p0
// and k1 at p3. With D = p3-p0, c = t0×t1, p = t0×D and q = D×t1 the end
// curvatures of a cubic with P1 = p0 + a·t0 and P2 = p3 - b·t1 are
//
//	k0·a² = 2/3·(p - b·c)
//	k1·b² = 2/3·(q - a·c)
//
// Eliminating b leaves a quartic in a. Of all positive solutions, the one
// closest to the arm length l/3 of a curve of length l is chosen.
func g2Arms(p0, p3 curve.Point, t0, t1 curve.Vec2, k0, k1, l float64) (float64, float64, bool) {
	D := p3.Sub(p0)
	c := t0.Cross(t1)
	p := t0.Cross(D)
	q := D.Cross(t1)
	small := 1e-9 / math.Max(l, 1)
	var cands [][2]float64
	switch {
	case math.Abs(c) < 1e-9:
		if math.Abs(k0) > small && math.Abs(k1) > small {
			a2, b2 := 2*p/(3*k0), 2*q/(3*k1)
			if a2 > 0 && b2 > 0 {
				cands = append(cands, [2]float64{math.Sqrt(a2), math.Sqrt(b2)})
			}
		}
	case math.Abs(k0) <= small:
		b := p / c
		cands = append(cands, [2]float64{(q - 1.5*k1*b*b) / c, b})
	case math.Abs(k1) <= small:
		a := q / c
		cands = append(cands, [2]float64{a, (p - 1.5*k0*a*a) / c})
	default:
		c2 := c * c
		roots, n := curve.SolveQuartic(
			k1*p*p/c2-2.0/3.0*q,
			2.0/3.0*c,
			-3*p*k0*k1/c2,
			0,
			2.25*k1*k0*k0/c2,
		)
		for _, a := range roots[:n] {
			cands = append(cands, [2]float64{a, (p - 1.5*k0*a*a) / c})
		}
	}
	best, found := [2]float64{}, false
	for _, ab := range cands {
		if !(ab[0] > 0 && ab[1] > 0 && ab[0] < 2*l && ab[1] < 2*l) {
			continue
		}
		if !found || armCost(ab, l) < armCost(best, l) {
			best, found = ab, true
		}
	}
	return best[0], best[1], found
}

func armCost(ab [2]float64, l float64) float64 {
	return math.Abs(ab[0]-l/3) + math.Abs(ab[1]-l/3)
}
