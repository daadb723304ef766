/*
Package easement implements the geometry engine for easement curves between
track endpoints: endpoint constraints, 2D pairs and angle helpers, and the
engine's configuration.

The sub-packages build on it:

	seg        arc/line segments and the segment tree
	flatten    cubic Bézier to arc/line approximation
	spline     the spiral spline solver for tagged knots
	polyn      polynomials in one variable, used by the spline's spirals
	bezier     Bézier curves with derived segment lists
	cornu      compound curves fitted between two endpoints
	metrics    length, radius, winding and curvature-rate walks
	traverse   moving a vehicle along a segment tree
	edit       split, merge and parallel offset
	clearance  track footprints and overlap tests

# BSD License

# Copyright (c) the easement authors

All rights reserved.

Please refer to the license file for more information.
*/
package easement

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'easement'
func tracer() tracing.Trace {
	return tracing.Select("easement")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Angles ================================================================

// NormalizeAngle reduces an angle (radians) to the half-open range (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed difference a - b, reduced to (-π, π].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}

// Direction returns the unit vector for angle a.
func Direction(a float64) curve.Vec2 {
	return curve.VecFromAngle(a)
}

// LeftNormal returns the unit vector pointing to the left of a direction of
// travel with angle a.
func LeftNormal(a float64) curve.Vec2 {
	return curve.VecFromAngle(a).Turn90()
}

// Circumcircle returns the center and radius of the circle through three
// points. ok is false for (nearly) collinear points.
func Circumcircle(a, b, c curve.Point) (center curve.Point, radius float64, ok bool) {
	if math.Abs(b.Sub(a).Cross(c.Sub(b))) <= 1e-12*c.Sub(a).Hypot2() {
		return curve.Point{}, 0, false
	}
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return curve.Point{}, 0, false
	}
	a2, b2, c2 := a.X*a.X+a.Y*a.Y, b.X*b.X+b.Y*b.Y, c.X*c.X+c.Y*c.Y
	ux := (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	uy := (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	center = curve.Pt(ux, uy)
	return center, a.Distance(center), true
}

// === Pair Data Type ========================================================

// Pair is a 2D point held as a complex number. The spline solver does its
// angle arithmetic on pairs; everything else uses curve.Point.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// PairOf converts a curve point to a pair.
func PairOf(pt curve.Point) Pair {
	return P(pt.X, pt.Y)
}

// Point converts a pair to a curve point.
func (p Pair) Point() curve.Point {
	return curve.Pt(p.X(), p.Y())
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p.C())
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p.C())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsNaN is a predicate: does either part of the pair hold NaN or ±Inf?
func (p Pair) IsNaN() bool {
	return cmplx.IsNaN(p.C()) || cmplx.IsInf(p.C())
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Abs is the distance of p from the origin.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Angle is the phase of p, in radians.
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return p + v
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return p * Pair(cmplx.Rect(1, theta))
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return p.Shifted(-v).Rotated(theta).Shifted(v)
}

// Cross is the z-component of the cross product p × q.
func (p Pair) Cross(q Pair) float64 {
	return p.X()*q.Y() - p.Y()*q.X()
}
