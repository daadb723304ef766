package seg

import "strings"

// Orientation records how the stored form of a leaf relates to the direction
// of travel. The two flags are independent and compose by exclusive or.
type Orientation uint8

const (
	// StorageReversed: the leaf sits below an odd number of Reversed wrappers.
	StorageReversed Orientation = 1 << iota
	// GeometricallyFlipped: the leaf is an arc stored clockwise.
	GeometricallyFlipped
)

// Compose combines two orientations. A flag set in both cancels out.
func (o Orientation) Compose(p Orientation) Orientation {
	return o ^ p
}

// Reversed is a predicate: is the storage order reversed?
func (o Orientation) Reversed() bool {
	return o&StorageReversed != 0
}

// Flipped is a predicate: is the geometry flipped?
func (o Orientation) Flipped() bool {
	return o&GeometricallyFlipped != 0
}

// Clockwise tells the rotational sense on an arc when moving forward in tree
// order. Exactly one of the two flags makes it clockwise.
func (o Orientation) Clockwise() bool {
	return o.Reversed() != o.Flipped()
}

func (o Orientation) String() string {
	var flags []string
	if o.Reversed() {
		flags = append(flags, "reversed")
	}
	if o.Flipped() {
		flags = append(flags, "flipped")
	}
	if len(flags) == 0 {
		return "forward"
	}
	return strings.Join(flags, "|")
}
