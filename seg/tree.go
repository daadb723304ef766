package seg

import (
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

// ErrGap indicates consecutive leaves of a tree which do not meet.
var ErrGap = errors.New("segment tree has a gap")

// Node is an element of a segment tree. It is implemented by exactly three
// types: Segment (a leaf), Branch and Reversed.
type Node interface {
	segmentNode()
}

// Branch is an ordered list of nodes, travelled first to last.
type Branch []Node

// Reversed presents its node in reverse storage order: children are travelled
// last to first and every leaf is travelled end to start.
type Reversed struct {
	Node Node
}

func (Segment) segmentNode()  {}
func (Branch) segmentNode()   {}
func (Reversed) segmentNode() {}

// Of wraps a slice of segments as a branch.
func Of(segs []Segment) Branch {
	b := make(Branch, len(segs))
	for i, s := range segs {
		b[i] = s
	}
	return b
}

// Walk visits the leaves of a tree in travel order. Leaves below an odd
// number of Reversed wrappers are handed to fn flipped, so that every leaf
// passed to fn runs in the direction of travel. Walk stops early if fn
// returns false, and reports whether it ran to completion.
func Walk(n Node, fn func(s Segment) bool) bool {
	return walk(n, false, fn)
}

func walk(n Node, rev bool, fn func(s Segment) bool) bool {
	switch n := n.(type) {
	case Segment:
		if rev {
			return fn(n.Flip())
		}
		return fn(n)
	case Branch:
		if rev {
			for i := len(n) - 1; i >= 0; i-- {
				if !walk(n[i], rev, fn) {
					return false
				}
			}
			return true
		}
		for _, child := range n {
			if !walk(child, rev, fn) {
				return false
			}
		}
	case Reversed:
		return walk(n.Node, !rev, fn)
	}
	return true
}

// Leaves collects the leaves of a tree in travel order, see Walk.
func Leaves(n Node) []Segment {
	var segs []Segment
	Walk(n, func(s Segment) bool {
		segs = append(segs, s)
		return true
	})
	return segs
}

// Ends returns the first and last point of a tree in travel order. ok is
// false for a tree without leaves.
func Ends(n Node) (first, last curve.Point, ok bool) {
	Walk(n, func(s Segment) bool {
		if !ok {
			first, ok = s.StartPoint(), true
		}
		last = s.EndPoint()
		return true
	})
	return
}

// CheckContinuity reports an ErrGap if consecutive leaves are further apart
// than tolerance.
func CheckContinuity(n Node, tolerance float64) error {
	var prev curve.Point
	var err error
	i := 0
	Walk(n, func(s Segment) bool {
		if i > 0 {
			if d := prev.Distance(s.StartPoint()); d > tolerance {
				tracer().Errorf("gap of %g before leaf %d: %s", d, i, s)
				err = fmt.Errorf("%w of %g before leaf %d", ErrGap, d, i)
				return false
			}
		}
		prev = s.EndPoint()
		i++
		return true
	})
	return err
}
