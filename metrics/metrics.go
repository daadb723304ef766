/*
Package metrics measures segment trees: length, tightest radius, total
winding and the largest jump in curvature.

All functions are written once over the three node types of package seg and
work the same for a single Bézier curve and for a compound curve made of
many. They never modify the tree.
*/
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

const _epsilon = 0.0000001

var (
	// ErrExcessiveWinding is the root of warnings about curves turning too often.
	ErrExcessiveWinding = errors.New("excessive winding")
	// ErrCurvatureDiscontinuity is the root of warnings about sharp jumps in
	// curvature.
	ErrCurvatureDiscontinuity = errors.New("curvature discontinuity")
)

// Length is the sum of the lengths of all leaves.
func Length(n seg.Node) float64 {
	switch n := n.(type) {
	case seg.Segment:
		return n.Length()
	case seg.Branch:
		l := 0.0
		for _, child := range n {
			l += Length(child)
		}
		return l
	case seg.Reversed:
		return Length(n.Node)
	}
	return 0
}

// MinRadius is the smallest radius of any arc in the tree, or sentinel if the
// tree holds no arcs.
func MinRadius(n seg.Node, sentinel float64) float64 {
	switch n := n.(type) {
	case seg.Segment:
		if n.Kind == seg.Arc && n.Radius < sentinel {
			return n.Radius
		}
		return sentinel
	case seg.Branch:
		r := sentinel
		for _, child := range n {
			r = math.Min(r, MinRadius(child, sentinel))
		}
		return r
	case seg.Reversed:
		return MinRadius(n.Node, sentinel)
	}
	return sentinel
}

// TotalWindingArc is the signed angle the direction of travel turns along
// the tree. Lines contribute nothing; a reversed sub-tree turns the other way.
func TotalWindingArc(n seg.Node) float64 {
	switch n := n.(type) {
	case seg.Segment:
		if n.Kind == seg.Arc {
			return n.Sweep
		}
		return 0
	case seg.Branch:
		w := 0.0
		for _, child := range n {
			w += TotalWindingArc(child)
		}
		return w
	case seg.Reversed:
		return -TotalWindingArc(n.Node)
	}
	return 0
}

// MaxRateOfChangeOfCurvature walks the leaves in travel order and returns the
// largest |κ - κ'| / length, where κ is the signed curvature of a leaf and κ'
// the curvature of the leaf before it. last is the curvature in effect before
// the first leaf; the curvature after the final leaf is returned so that a
// caller can continue the walk with the next tree.
//
// Leaves of zero length are skipped, except when a leaf is the only child of
// its branch: its curvature is then carried on.
func MaxRateOfChangeOfCurvature(n seg.Node, last float64) (rate, lastOut float64) {
	return maxRate(n, false, last, true)
}

func maxRate(n seg.Node, rev bool, last float64, sole bool) (float64, float64) {
	switch n := n.(type) {
	case seg.Segment:
		if rev {
			n = n.Flip()
		}
		k := n.Curvature()
		l := n.Length()
		if l <= _epsilon {
			if sole {
				return 0, k
			}
			return 0, last
		}
		return math.Abs(k-last) / l, k
	case seg.Branch:
		rate := 0.0
		visit := func(child seg.Node) {
			var r float64
			r, last = maxRate(child, rev, last, len(n) == 1)
			rate = math.Max(rate, r)
		}
		if rev {
			for i := len(n) - 1; i >= 0; i-- {
				visit(n[i])
			}
		} else {
			for _, child := range n {
				visit(child)
			}
		}
		return rate, last
	case seg.Reversed:
		return maxRate(n.Node, !rev, last, sole)
	}
	return 0, last
}

// Limits are the thresholds Validate checks against.
type Limits struct {
	MaxWinding       float64 // radians
	MaxCurvatureRate float64
}

// LimitsFrom takes the limits from an engine configuration.
func LimitsFrom(conf easement.Config) Limits {
	return Limits{MaxWinding: conf.MaxWinding, MaxCurvatureRate: conf.MaxCurvatureRate}
}

// WarningKind tells what a Warning is about.
type WarningKind uint8

const (
	ExcessiveWinding WarningKind = iota
	CurvatureDiscontinuity
)

func (k WarningKind) String() string {
	if k == CurvatureDiscontinuity {
		return "curvature discontinuity"
	}
	return "excessive winding"
}

// Warning reports a curve which is valid but probably not what the user
// wants. Warnings are never fatal; it is up to the caller to reject the
// curve.
type Warning struct {
	Kind  WarningKind
	Value float64
	Limit float64
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %.6g exceeds %.6g", w.Kind, w.Value, w.Limit)
}

// Unwrap returns ErrExcessiveWinding or ErrCurvatureDiscontinuity.
func (w Warning) Unwrap() error {
	if w.Kind == CurvatureDiscontinuity {
		return ErrCurvatureDiscontinuity
	}
	return ErrExcessiveWinding
}

// Validate checks a tree against lim and returns a warning for every limit
// exceeded. The initial curvature for the rate check is that of the first
// leaf, so a curve starting on a circle is not penalized for it.
func Validate(n seg.Node, lim Limits) []Warning {
	var warnings []Warning
	if w := TotalWindingArc(n); math.Abs(w) > lim.MaxWinding {
		warnings = append(warnings, Warning{Kind: ExcessiveWinding, Value: math.Abs(w), Limit: lim.MaxWinding})
	}
	k0 := 0.0
	seg.Walk(n, func(s seg.Segment) bool {
		k0 = s.Curvature()
		return false
	})
	if rate, _ := MaxRateOfChangeOfCurvature(n, k0); rate > lim.MaxCurvatureRate {
		warnings = append(warnings, Warning{Kind: CurvatureDiscontinuity, Value: rate, Limit: lim.MaxCurvatureRate})
	}
	for _, w := range warnings {
		tracer().Infof("curve warning: %s", w)
	}
	return warnings
}
