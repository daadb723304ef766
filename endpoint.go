package easement

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

var (
	// ErrInvalidEndpoint indicates an endpoint with NaN/Inf coordinates or angle.
	ErrInvalidEndpoint = errors.New("endpoint has invalid coordinate or angle")
	// ErrCenterMismatch indicates a curved endpoint whose center is not at
	// distance |radius| along the normal of the tangent.
	ErrCenterMismatch = errors.New("endpoint center does not match radius")
)

// EndpointConstraint describes one end of an easement: where it is, which way
// it points and how strongly it is curved there.
//
// Angle is the tangent in the direction of travel from end 0 to end 1, in
// radians counter-clockwise from +x. Radius is 0 for a straight end. For a
// curved end the sign of Radius tells the side of the center: positive puts
// the center on the left of the direction of travel.
type EndpointConstraint struct {
	Pos    curve.Point
	Angle  float64
	Radius float64
	Center curve.Point
}

// Straight creates a constraint for an end with no curvature.
func Straight(pos curve.Point, angle float64) EndpointConstraint {
	return EndpointConstraint{Pos: pos, Angle: angle}
}

// Curved creates a constraint for an end on a circle of the given signed
// radius. The center is derived from pos, angle and radius.
func Curved(pos curve.Point, angle, radius float64) EndpointConstraint {
	if Is0(radius) {
		return Straight(pos, angle)
	}
	return EndpointConstraint{
		Pos:    pos,
		Angle:  angle,
		Radius: radius,
		Center: pos.Translate(LeftNormal(angle).Mul(radius)),
	}
}

// IsStraight is a predicate: does this end carry no curvature?
func (ec EndpointConstraint) IsStraight() bool {
	return Is0(ec.Radius)
}

// Curvature returns the signed curvature 1/Radius, 0 for straight ends.
func (ec EndpointConstraint) Curvature() float64 {
	if ec.IsStraight() {
		return 0
	}
	return 1 / ec.Radius
}

// Validate checks the constraint invariants.
func (ec EndpointConstraint) Validate() error {
	if !IsFinite(ec.Pos.X) || !IsFinite(ec.Pos.Y) || !IsFinite(ec.Angle) || !IsFinite(ec.Radius) {
		return ErrInvalidEndpoint
	}
	if ec.IsStraight() {
		return nil
	}
	want := ec.Pos.Translate(LeftNormal(ec.Angle).Mul(ec.Radius))
	if d := want.Distance(ec.Center); d > 1e-6*math.Max(1, math.Abs(ec.Radius)) {
		return fmt.Errorf("%w: center off by %g", ErrCenterMismatch, d)
	}
	return nil
}

// Reversed returns the same end seen from the opposite direction of travel.
// The center stays put; the tangent turns around and so the radius changes
// sign.
func (ec EndpointConstraint) Reversed() EndpointConstraint {
	ec.Angle = NormalizeAngle(ec.Angle + math.Pi)
	ec.Radius = -ec.Radius
	return ec
}

// Transform maps the constraint through an affine transform that is a
// similarity (translation, rotation, uniform scale, reflection).
// The tangent and radius follow the mapped geometry.
func (ec EndpointConstraint) Transform(aff curve.Affine) EndpointConstraint {
	pos := ec.Pos.Transform(aff)
	ahead := ec.Pos.Translate(Direction(ec.Angle)).Transform(aff)
	dir := ahead.Sub(pos)
	out := EndpointConstraint{Pos: pos, Angle: dir.Angle()}
	if ec.IsStraight() {
		return out
	}
	scale := math.Sqrt(math.Abs(aff.Determinant()))
	r := ec.Radius * scale
	if aff.Determinant() < 0 {
		r = -r
	}
	return Curved(pos, out.Angle, r)
}

func (ec EndpointConstraint) String() string {
	if ec.IsStraight() {
		return fmt.Sprintf("(%.4g,%.4g)@%.2f°", ec.Pos.X, ec.Pos.Y, ec.Angle/Deg2Rad)
	}
	return fmt.Sprintf("(%.4g,%.4g)@%.2f° r=%.4g", ec.Pos.X, ec.Pos.Y, ec.Angle/Deg2Rad, ec.Radius)
}
