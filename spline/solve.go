package spline

import (
	"fmt"
	"math"

	easement "github.com/ankon/xtrkcad-sub003"
	"honnef.co/go/curve"
)

// Validate checks if a knot sequence is solvable.
func Validate(knots []Knot) error {
	n := len(knots)
	if n < 2 {
		return fmt.Errorf("%w: open spline needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, k := range knots {
		x, y := k.Pt.X, k.Pt.Y
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return fmt.Errorf("%w: coordinate at knot %d", ErrInvalidKnot, i)
		}
		if k.Tag > EndOpen {
			return fmt.Errorf("%w: unknown tag at knot %d", ErrInvalidKnot, i)
		}
		if (k.Tag == Open) != (i == 0) || (k.Tag == EndOpen) != (i == n-1) {
			return fmt.Errorf("%w: tag %s at knot %d", ErrInvalidKnot, k.Tag, i)
		}
	}
	for i := 0; i < n-1; i++ {
		if knots[i].Pt.Distance(knots[i+1].Pt) <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, i+1)
		}
	}
	return nil
}

// Solve finds a smooth curve through a sequence of tagged knots.
//
// The knot sequence is broken into runs at Right, Left and Corner knots. A
// Right knot immediately followed by a Left knot is joined by a spiral
// matching tangent and curvature at both knots; these are taken from the
// circles through each knot and its two outer neighbours. All other runs are
// interpolated by Hobby's algorithm, with the tangent fixed at Right and
// Left knots.
func Solve(knots []Knot) (Path, error) {
	if err := Validate(knots); err != nil {
		return Path{}, err
	}
	sk := newSkeleton(knots)
	path := Path{Marks: make([]int, len(knots))}
	path.MoveTo(knots[0].Pt)
	for _, r := range splitRuns(sk) {
		if r.isSpiral() {
			i, j := r.start, r.end
			sp, err := solveSpiral(sk.Z(i), sk.Z(j), sk.PostDir(i).Angle(), sk.PreDir(j).Angle(),
				sk.kappa[i], sk.kappa[j])
			if err != nil {
				return Path{}, err
			}
			for _, c := range sp.cubics() {
				path.CubicTo(c.P1, c.P2, c.P3)
			}
			path.Marks[j] = len(path.BezPath) - 1
			continue
		}
		for k, c := range solveHobby(r) {
			path.CubicTo(c.P1, c.P2, c.P3)
			path.Marks[r.start+k+1] = len(path.BezPath) - 1
		}
	}
	if path.IsNaN() || path.IsInf() {
		return Path{}, fmt.Errorf("%w: solution is not finite", ErrNoConvergence)
	}
	tracer().Infof("spline = %s", path)
	return path, nil
}

// String returns the path in MetaFont notation, for debugging:
//
//	(0,0) .. controls (3.3333,0.0000) and (6.6667,0.0000)
//	  .. (10,0)
func (p Path) String() string {
	var s string
	for i, el := range p.BezPath {
		switch el.Kind {
		case curve.MoveToKind:
			if i > 0 {
				s += "\n  "
			}
			s += ptstr(el.P0, false)
		case curve.LineToKind:
			s += " -- " + ptstr(el.P0, false)
		case curve.CubicToKind:
			s += fmt.Sprintf(" .. controls %s and %s\n  .. %s", ptstr(el.P0, true),
				ptstr(el.P1, true), ptstr(el.P2, false))
		case curve.ClosePathKind:
			s += " .. cycle"
		}
	}
	return s
}

func ptstr(pt curve.Point, iscontrol bool) string {
	return ptstring(easement.PairOf(pt), iscontrol)
}
