package spline

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

const _epsilon = 0.0000001

var (
	// ErrTooFewKnots indicates knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("spline has too few knots")
	// ErrInvalidKnot indicates a knot coordinate containing NaN/Inf, or a
	// knot tag which is not allowed at its position.
	ErrInvalidKnot = errors.New("spline has invalid knot")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("spline has degenerate segment")
	// ErrNoConvergence indicates the spiral between a Right and a Left knot
	// could not be solved.
	ErrNoConvergence = errors.New("spiral iteration did not converge")
)

// Tag tells the solver how the curve behaves at a knot.
type Tag uint8

const (
	Open    Tag = iota // first knot of an open curve
	Corner             // tangent may jump; both sides end with a free curl
	G2                 // smooth knot, continuous tangent and curvature
	Right              // tangent and curvature fixed by the circle through this and the two preceding knots
	Left               // tangent and curvature fixed by the circle through this and the two following knots
	EndOpen            // last knot of an open curve
)

func (t Tag) String() string {
	switch t {
	case Open:
		return "{"
	case Corner:
		return "v"
	case G2:
		return "o"
	case Right:
		return "]"
	case Left:
		return "["
	case EndOpen:
		return "}"
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Knot is a point the spline passes through.
type Knot struct {
	Pt  curve.Point
	Tag Tag
}

// Path is the result of solving a knot sequence. It is a Bézier path
// starting with a MoveTo to the first knot. Marks[i] is the index of the path
// element ending at knot i, so the curve between knots i and j consists of
// elements Marks[i]+1 through Marks[j].
type Path struct {
	curve.BezPath
	Marks []int
}

// Between returns the cubics of the path from knot i to knot j.
func (p Path) Between(i, j int) []curve.CubicBez {
	if i < 0 || j >= len(p.Marks) || i >= j {
		return nil
	}
	var cubics []curve.CubicBez
	for k := p.Marks[i] + 1; k <= p.Marks[j]; k++ {
		if s, ok := p.Segment(k); ok {
			cubics = append(cubics, s.Cubic())
		}
	}
	return cubics
}

// Func is the signature of a spline solver. Solve is the implementation of
// this package; clients may substitute their own.
type Func func(knots []Knot) (Path, error)

var _ Func = Solve
