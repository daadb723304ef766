package edit

import (
	"fmt"

	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/cornu"
)

// joinTolerance is the largest gap between two ends which still meet.
const joinTolerance = 1e-6

// Merge joins end endA of a to end endB of b. The result runs from the far
// end of a to the far end of b.
//
// Two Bézier curves become one, found by undoing the de Casteljau step that
// would split it at the shared point; merging the two halves of a split
// restores the original curve. Compound curves are concatenated.
func (ed Editor) Merge(a Shape, endA int, b Shape, endB int) (Shape, error) {
	pa, err := EndParams(a, endA)
	if err != nil {
		return nil, err
	}
	pb, err := EndParams(b, endB)
	if err != nil {
		return nil, err
	}
	if d := pa.Pos.Distance(pb.Pos); d > joinTolerance {
		return nil, fmt.Errorf("%w: ends are %.4g apart", ErrNotAdjacent, d)
	}
	switch sa := a.(type) {
	case *bezier.Curve:
		sb, ok := b.(*bezier.Curve)
		if !ok {
			return nil, fmt.Errorf("%w: %T and %T", ErrTypeMismatch, a, b)
		}
		return mergeBezier(sa, endA, sb, endB), nil
	case *cornu.Curve:
		sb, ok := b.(*cornu.Curve)
		if !ok {
			return nil, fmt.Errorf("%w: %T and %T", ErrTypeMismatch, a, b)
		}
		return mergeCornu(sa, endA, sb, endB), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, a)
}

func mergeBezier(a *bezier.Curve, endA int, b *bezier.Curve, endB int) *bezier.Curve {
	a, b = a.Clone(), b.Clone()
	if endA == 0 {
		a.Reverse()
	}
	if endB == 1 {
		b.Reverse()
	}
	m := a.Pos[3]
	da, db := m.Distance(a.Pos[2]), b.Pos[1].Distance(m)
	p0, p3 := a.Pos[0], b.Pos[3]
	p1, p2 := a.Pos[1], b.Pos[2]
	if da+db > 0 {
		t := da / (da + db)
		if t > 0 {
			p1 = p0.Translate(a.Pos[1].Sub(p0).Div(t))
		}
		if t < 1 {
			p2 = p3.Translate(b.Pos[2].Sub(p3).Div(1 - t))
		}
	}
	merged := bezier.New(p0, p1, p2, p3, a.Kind)
	tracer().Infof("merged into %s", merged)
	return merged
}

func mergeCornu(a *cornu.Curve, endA int, b *cornu.Curve, endB int) *cornu.Curve {
	a, b = a.Clone(), b.Clone()
	if endA == 0 {
		a.Reverse()
	}
	if endB == 1 {
		b.Reverse()
	}
	curves := append(a.Curves, b.Curves...)
	merged := a.Fitter().Assemble(a.End[0], b.End[1], curves)
	tracer().Infof("merged into %s", merged)
	return merged
}
