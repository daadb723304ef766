package traverse

import (
	"github.com/ankon/xtrkcad-sub003/seg"
)

// frame is one level of a cursor: the branch, the index of the child taken,
// and whether the branch is travelled in reverse storage order.
type frame struct {
	branch seg.Branch
	index  int
	rev    bool
}

// cursor points at a leaf of a segment tree and remembers the path of
// branches leading to it.
type cursor struct {
	frames []frame
	leaf   seg.Segment // as stored
	rev    bool        // leaf is below an odd number of Reversed wrappers
}

func (c *cursor) clone() cursor {
	d := *c
	d.frames = append([]frame(nil), c.frames...)
	return d
}

// descend moves to the first (fromStart) or last leaf of n in travel order.
// It returns false if n holds no leaves.
func (c *cursor) descend(n seg.Node, rev bool, fromStart bool) bool {
	switch n := n.(type) {
	case seg.Segment:
		c.leaf, c.rev = n, rev
		return true
	case seg.Reversed:
		return c.descend(n.Node, !rev, fromStart)
	case seg.Branch:
		if len(n) == 0 {
			return false
		}
		k, delta := 0, 1
		if rev == fromStart {
			k, delta = len(n)-1, -1
		}
		top := len(c.frames)
		c.frames = append(c.frames, frame{branch: n, rev: rev})
		for ; k >= 0 && k < len(n); k += delta {
			c.frames[top].index = k
			if c.descend(n[k], rev, fromStart) {
				return true
			}
		}
		c.frames = c.frames[:top]
	}
	return false
}

// step moves to the adjacent leaf in travel order, popping levels as
// branches are exhausted. The cursor is unchanged if there is no such leaf.
func (c *cursor) step(forward bool) bool {
	saved := c.clone()
	for len(c.frames) > 0 {
		top := len(c.frames) - 1
		f := c.frames[top]
		delta := 1
		if f.rev == forward {
			delta = -1
		}
		for k := f.index + delta; k >= 0 && k < len(f.branch); k += delta {
			c.frames[top].index = k
			if c.descend(f.branch[k], f.rev, forward) {
				return true
			}
		}
		c.frames = c.frames[:top]
	}
	*c = saved
	return false
}

// orientation tells how the leaf is to be travelled.
func (c *cursor) orientation() seg.Orientation {
	var o seg.Orientation
	if c.rev {
		o = seg.StorageReversed
	}
	return o.Compose(c.leaf.Orientation())
}

// travelled returns the leaf running in the direction of travel.
func (c *cursor) travelled() seg.Segment {
	if c.rev {
		return c.leaf.Flip()
	}
	return c.leaf
}
