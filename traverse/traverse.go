/*
Package traverse moves a vehicle along segment trees.

A position on a tree is found by Locate, which searches all leaves for the
point nearest to a given position. Advance then moves along the tree by a
distance, stepping from leaf to leaf and up and down the branches of the
tree, until the distance is used up or the tree ends. Follow continues across
the ends of connected tracks.

The direction of motion is taken from the vehicle's heading: a vehicle
heading within 90° of the travel direction of the tree moves forward along
it, otherwise backward. The vehicle keeps facing the way it faced.
*/
package traverse

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// tracer writes to trace with key 'easement'
func tracer() tracing.Trace {
	return tracing.Select("easement")
}

var (
	// ErrOffCurve is returned for positions too far from the tree.
	ErrOffCurve = errors.New("position is not on the curve")
	// ErrEmptyTree is returned for trees without leaves.
	ErrEmptyTree = errors.New("segment tree is empty")
	// ErrHandOffLimit is returned when Follow crosses too many tracks.
	ErrHandOffLimit = errors.New("too many track hand-offs")
)

// Location is a point on a segment tree.
type Location struct {
	Point    curve.Point // nearest point on the tree
	Distance float64     // distance of the searched position from Point
	Along    float64     // distance of Point from the start of its leaf, in travel direction
	cur      cursor
}

// Leaf returns the leaf holding the location, running in travel direction.
func (l Location) Leaf() seg.Segment {
	return l.cur.travelled()
}

// Orientation tells how the stored leaf relates to the direction of travel.
func (l Location) Orientation() seg.Orientation {
	return l.cur.orientation()
}

// Tangent is the direction of travel of the tree at the location.
func (l Location) Tangent() float64 {
	return easement.NormalizeAngle(l.Leaf().TangentAt(l.Along))
}

// Radius is the radius of the leaf, 0 on lines.
func (l Location) Radius() float64 {
	if s := l.cur.leaf; s.Kind == seg.Arc {
		return s.Radius
	}
	return 0
}

// Center is the center of the leaf's circle. ok is false on lines.
func (l Location) Center() (center curve.Point, ok bool) {
	if s := l.cur.leaf; s.Kind == seg.Arc {
		return s.Center, true
	}
	return curve.Point{}, false
}

// Path returns the index of the child taken in each branch, from the root
// of the tree down to the leaf. Reversed wrappers take no index. For a
// compound curve, Path()[0] is the index of the Bézier curve holding the
// location.
func (l Location) Path() []int {
	path := make([]int, len(l.cur.frames))
	for i, f := range l.cur.frames {
		path[i] = f.index
	}
	return path
}

// Locate finds the point of a tree nearest to pt. It fails with ErrOffCurve
// if that point is further from pt than tolerance.
func Locate(n seg.Node, pt curve.Point, tolerance float64) (Location, error) {
	var c cursor
	if !c.descend(n, false, true) {
		return Location{}, ErrEmptyTree
	}
	best := Location{Distance: math.Inf(1)}
	for {
		leaf := c.travelled()
		along, dist := leaf.Nearest(pt)
		if dist < best.Distance {
			best = Location{Point: leaf.PointAt(along), Distance: dist, Along: along, cur: c.clone()}
		}
		if !c.step(true) {
			break
		}
	}
	if best.Distance > tolerance {
		tracer().Debugf("locate %v: nearest point %v is %g away", pt, best.Point, best.Distance)
		return best, fmt.Errorf("%w: %v is %.4g away", ErrOffCurve, pt, best.Distance)
	}
	return best, nil
}

// Result is the outcome of a move.
type Result struct {
	Point   curve.Point
	Heading float64 // heading of the vehicle after the move
	// Exited is set if the tree ended before the distance was used up.
	// Remaining is then the distance left over, with the sign of the
	// distance requested.
	Exited    bool
	Remaining float64
	Location  Location
}

// Traverser moves along segment trees. The zero value uses the default
// configuration.
type Traverser struct {
	Config easement.Config
}

func (t Traverser) conf() easement.Config {
	if t.Config == (easement.Config{}) {
		return easement.DefaultConfig()
	}
	return t.Config
}

// Advance moves a vehicle at pos, facing heading, by dist along a tree. A
// negative dist moves the vehicle backwards. The tree is not modified.
func (t Traverser) Advance(n seg.Node, pos curve.Point, heading, dist float64) (Result, error) {
	loc, err := Locate(n, pos, t.conf().OnCurveTolerance)
	if err != nil {
		return Result{}, err
	}
	facing := math.Abs(easement.AngleDiff(heading, loc.Tangent())) <= math.Pi/2
	forward := facing == (dist >= 0)
	todo := math.Abs(dist)
	c, along := loc.cur, loc.Along
	tracer().Debugf("advance %.4g from %v, %s, forward=%v", dist, loc.Point, c.orientation(), forward)
	for {
		leaf := c.travelled()
		l := leaf.Length()
		if forward && along+todo <= l {
			along += todo
			todo = 0
			break
		}
		if !forward && along-todo >= 0 {
			along -= todo
			todo = 0
			break
		}
		if forward {
			todo -= l - along
		} else {
			todo -= along
		}
		if !c.step(forward) {
			if forward {
				along = l
			} else {
				along = 0
			}
			break
		}
		if forward {
			along = 0
		} else {
			along = c.travelled().Length()
		}
	}
	leaf := c.travelled()
	res := Result{
		Point:    leaf.PointAt(along),
		Location: Location{Point: leaf.PointAt(along), Along: along, cur: c},
	}
	res.Heading = res.Location.Tangent()
	if !facing {
		res.Heading = easement.NormalizeAngle(res.Heading + math.Pi)
	}
	if todo > easement.Epsilon {
		res.Exited = true
		res.Remaining = math.Copysign(todo, dist)
		tracer().Debugf("left the tree at %v with %.4g to go", res.Point, res.Remaining)
	}
	return res, nil
}

// Track is anything with a segment tree, such as a Bézier or compound curve.
type Track interface {
	Node() seg.Node
}

// HandOff tells which track continues where another one ends.
type HandOff interface {
	// Next returns the track connected to from at exit, and the point where
	// the vehicle enters it. ok is false at a dead end.
	Next(from Track, exit curve.Point, heading float64) (next Track, entry curve.Point, ok bool)
}

// Follow moves by dist like Advance, continuing onto connected tracks as long
// as hand-off finds them. It returns the result on the last track visited
// together with that track.
func (t Traverser) Follow(track Track, pos curve.Point, heading, dist float64, handoff HandOff) (Result, Track, error) {
	limit := t.conf().MaxHandOffs
	for crossed := 0; ; crossed++ {
		res, err := t.Advance(track.Node(), pos, heading, dist)
		if err != nil || !res.Exited || handoff == nil {
			return res, track, err
		}
		next, entry, ok := handoff.Next(track, res.Point, res.Heading)
		if !ok {
			return res, track, nil
		}
		if crossed >= limit {
			return res, track, fmt.Errorf("%w: %d", ErrHandOffLimit, limit)
		}
		track, pos, heading, dist = next, entry, res.Heading, res.Remaining
	}
}
