/*
Package edit splits, merges and offsets curves.

Shapes are Bézier curves (*bezier.Curve) and compound curves (*cornu.Curve).
No operation modifies its input shapes; results are new shapes.
*/
package edit

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/cornu"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'easement'
func tracer() tracing.Trace {
	return tracing.Select("easement")
}

var (
	ErrTypeMismatch   = errors.New("shapes are of different kinds")
	ErrNotAdjacent    = errors.New("shapes do not meet")
	ErrSliver         = errors.New("split leaves a sliver")
	ErrOffsetTooLarge = errors.New("offset collapses a curve")
	ErrClearance      = errors.New("offset track overlaps the original")
	ErrUnsupported    = errors.New("unsupported shape")
)

// SliverError reports a split piece shorter than the minimum length.
type SliverError struct {
	Side   int // 0 for the piece at the start, 1 for the piece at the end
	Length float64
}

func (e *SliverError) Error() string {
	return fmt.Sprintf("split leaves a sliver of length %.4g at side %d", e.Length, e.Side)
}

func (e *SliverError) Is(target error) bool {
	return target == ErrSliver
}

// Shape is a curve which can be edited: *bezier.Curve or *cornu.Curve.
type Shape interface {
	Node() seg.Node
	BoundingBox() curve.Rect
}

// Editor edits shapes. The zero value uses the default configuration.
type Editor struct {
	Config easement.Config
}

func (ed Editor) conf() easement.Config {
	if ed.Config == (easement.Config{}) {
		return easement.DefaultConfig()
	}
	return ed.Config
}

// Split cuts a shape at pos with the default configuration, see
// Editor.Split.
func Split(shape Shape, pos curve.Point) (Shape, Shape, error) {
	return Editor{}.Split(shape, pos)
}

// Merge joins two shapes with the default configuration, see Editor.Merge.
func Merge(a Shape, endA int, b Shape, endB int) (Shape, error) {
	return Editor{}.Merge(a, endA, b, endB)
}

// Offset creates a parallel shape with the default configuration, see
// Editor.Offset.
func Offset(shape Shape, sep float64) (Shape, error) {
	return Editor{}.Offset(shape, sep)
}

// EndParams returns end i (0 or 1) of a shape as an endpoint constraint.
func EndParams(shape Shape, i int) (easement.EndpointConstraint, error) {
	if i != 0 && i != 1 {
		return easement.EndpointConstraint{}, fmt.Errorf("no end %d", i)
	}
	switch s := shape.(type) {
	case *bezier.Curve:
		if i == 0 {
			return s.Start(), nil
		}
		return s.End(), nil
	case *cornu.Curve:
		return s.End[i].EndpointConstraint, nil
	}
	return easement.EndpointConstraint{}, fmt.Errorf("%w: %T", ErrUnsupported, shape)
}
