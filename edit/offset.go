package edit

import (
	"fmt"
	"math"

	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/clearance"
	"github.com/ankon/xtrkcad-sub003/cornu"
	"github.com/ankon/xtrkcad-sub003/traverse"
)

// Offset creates a shape running parallel to shape at distance sep.
// Positive values of sep place it on the left of the direction of travel.
//
// A Bézier curve is moved as a whole, perpendicular to its chord. For a
// compound curve both ends are moved: a curved end stays on its circle's
// center with the radius changed by sep, and the curve is re-fit. If
// Config.TrackWidth is set, the result must keep clear of shape.
func (ed Editor) Offset(shape Shape, sep float64) (Shape, error) {
	var out Shape
	switch s := shape.(type) {
	case *bezier.Curve:
		b := s.Clone()
		chord := s.Pos[3].Sub(s.Pos[0]).Angle()
		b.Transform(curve.Translate(easement.LeftNormal(chord).Mul(sep)))
		out = b
	case *cornu.Curve:
		c, err := offsetCornu(s, sep)
		if err != nil {
			return nil, err
		}
		out = c
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, shape)
	}
	if w := ed.conf().TrackWidth; w > 0 {
		if overlap, area := clearance.Overlaps(shape.Node(), out.Node(), w); overlap {
			return nil, fmt.Errorf("%w: overlap area %.4g at separation %.4g", ErrClearance, area, sep)
		}
	}
	tracer().Infof("offset by %.4g", sep)
	return out, nil
}

func offsetCornu(c *cornu.Curve, sep float64) (*cornu.Curve, error) {
	var ends [2]easement.EndpointConstraint
	for i, e := range c.End {
		pos := e.Pos.Translate(easement.LeftNormal(e.Angle).Mul(sep))
		if e.IsStraight() {
			ends[i] = easement.Straight(pos, e.Angle)
			continue
		}
		r := e.Radius - sep
		if easement.Is0(r) || math.Signbit(r) != math.Signbit(e.Radius) {
			return nil, fmt.Errorf("%w: radius %.4g at end %d", ErrOffsetTooLarge, e.Radius, i)
		}
		ends[i] = easement.Curved(pos, e.Angle, r)
	}
	fitted, err := c.Fitter().Fit(ends[0], ends[1])
	if err != nil {
		return nil, err
	}
	for i := range fitted.End {
		fitted.End[i].Bound = c.End[i].Bound
	}
	return fitted, nil
}

// OffsetToward offsets shape by |sep| to the side pick lies on.
func (ed Editor) OffsetToward(shape Shape, sep float64, pick curve.Point) (Shape, error) {
	loc, err := traverse.Locate(shape.Node(), pick, math.Inf(1))
	if err != nil {
		return nil, err
	}
	side := easement.Direction(loc.Tangent()).Cross(pick.Sub(loc.Point))
	sep = math.Abs(sep)
	if side < 0 {
		sep = -sep
	}
	return ed.Offset(shape, sep)
}
