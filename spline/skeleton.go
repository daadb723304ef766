package spline

import (
	"fmt"
	"math"
	"math/cmplx"

	easement "github.com/ankon/xtrkcad-sub003"
)

// skeleton holds the knots of a spline, and the tangent direction and
// curvature fixed at its Right and Left knots.
type skeleton struct {
	points   []easement.Pair
	tags     []Tag
	predirs  []easement.Pair // explicit incoming direction at knot i
	postdirs []easement.Pair // explicit outgoing direction at knot i
	kappa    []float64       // curvature at knot i, where fixed
}

var nan = easement.Pair(cmplx.NaN())

func newSkeleton(knots []Knot) *skeleton {
	sk := &skeleton{
		points: make([]easement.Pair, len(knots)),
		tags:   make([]Tag, len(knots)),
		kappa:  make([]float64, len(knots)),
	}
	for i, k := range knots {
		sk.points[i] = easement.PairOf(k.Pt)
		sk.tags[i] = k.Tag
	}
	for i, tag := range sk.tags {
		switch tag {
		case Right:
			dir, k := sk.frameBefore(i)
			sk.setDir(i, dir)
			sk.kappa[i] = k
		case Left:
			dir, k := sk.frameAfter(i)
			sk.setDir(i, dir)
			sk.kappa[i] = k
		}
	}
	return sk
}

// frameBefore fixes the tangent at a Right knot from the circle through the
// knot and its two predecessors.
func (sk *skeleton) frameBefore(i int) (easement.Pair, float64) {
	if i >= 2 {
		return circleFrame(sk.Z(i-2), sk.Z(i-1), sk.Z(i))
	} else if i == 0 {
		return unit(sk.Z(1) - sk.Z(0)), 0
	}
	return unit(sk.Z(i) - sk.Z(i-1)), 0
}

// frameAfter fixes the tangent at a Left knot from the circle through the
// knot and its two successors.
func (sk *skeleton) frameAfter(i int) (easement.Pair, float64) {
	last := sk.N() - 1
	switch {
	case i <= last-2:
		dir, k := circleFrame(sk.Z(i+2), sk.Z(i+1), sk.Z(i))
		return -dir, -k
	case i == last-1:
		return unit(sk.Z(i+1) - sk.Z(i)), 0
	}
	return unit(sk.Z(i) - sk.Z(i-1)), 0
}

// circleFrame returns the unit tangent at c of the circle through a, b and c,
// pointing in the direction of travel a → b → c, and the signed curvature of
// that circle. Collinear knots give the chord direction and curvature 0.
func circleFrame(a, b, c easement.Pair) (easement.Pair, float64) {
	center, r, ok := easement.Circumcircle(a.Point(), b.Point(), c.Point())
	if !ok {
		return unit(c - b), 0
	}
	radial := c - easement.PairOf(center)
	if (b - a).Cross(c-b) > 0 {
		return unit(radial * 1i), 1 / r
	}
	return unit(radial * -1i), -1 / r
}

func unit(p easement.Pair) easement.Pair {
	a := p.Abs()
	if a <= _epsilon {
		return nan
	}
	return p.Scaled(1 / a)
}

func (sk *skeleton) N() int {
	return len(sk.points)
}

// Z returns knot i.
func (sk *skeleton) Z(i int) easement.Pair {
	return sk.points[i]
}

func (sk *skeleton) setDir(i int, dir easement.Pair) {
	sk.predirs = extendC(sk.predirs, i, nan)
	sk.postdirs = extendC(sk.postdirs, i, nan)
	sk.predirs[i] = dir
	sk.postdirs[i] = dir
}

// PreDir gets the incoming tangent at z.i, NaN if free.
func (sk *skeleton) PreDir(i int) easement.Pair {
	return getC(sk.predirs, i, nan)
}

// PostDir gets the outgoing tangent at z.i, NaN if free.
func (sk *skeleton) PostDir(i int) easement.Pair {
	return getC(sk.postdirs, i, nan)
}

// Is a knot a breakpoint for splitting the skeleton into runs?
func (sk *skeleton) isrough(i int) bool {
	switch sk.tags[i] {
	case Corner, Right, Left:
		return true
	}
	return !cmplx.IsNaN(sk.PreDir(i).C()) || !cmplx.IsNaN(sk.PostDir(i).C())
}

// run is a view onto a stretch of knots between two rough knots.
type run struct {
	whole *skeleton
	start int // first index within skeleton
	end   int // last index within skeleton
}

func (r *run) N() int {
	return r.end - r.start + 1
}

func (r *run) Z(i int) easement.Pair {
	return r.whole.Z(r.start + i)
}

func (r *run) PostDir(i int) easement.Pair {
	return r.whole.PostDir(r.start + i)
}

func (r *run) PreDir(i int) easement.Pair {
	return r.whole.PreDir(r.start + i)
}

func (r *run) delta(i int) easement.Pair {
	return r.Z(i+1) - r.Z(i)
}

func (r *run) d(i int) float64 {
	return r.delta(i).Abs()
}

// Turning angle at z.i. It is 0 at both ends of the run.
func (r *run) psi(i int) float64 {
	if i <= 0 || i >= r.N()-1 {
		return 0
	}
	return reduceAngle(r.delta(i).Angle() - r.delta(i-1).Angle())
}

// isSpiral is a predicate: does this run connect a Right knot directly to
// a Left knot?
func (r *run) isSpiral() bool {
	return r.N() == 2 && r.whole.tags[r.start] == Right && r.whole.tags[r.end] == Left
}

func (r *run) String() string {
	s := ""
	for i := 0; i < r.N(); i++ {
		if i > 0 {
			s += " .. "
		}
		s += ptstring(r.Z(i), false)
	}
	return fmt.Sprintf("%s%s%s", r.whole.tags[r.start], s, r.whole.tags[r.end])
}

// Split the skeleton into runs, breaking it up at rough knots.
func splitRuns(sk *skeleton) []*run {
	var runs []*run
	at := 0
	for i := 1; i < sk.N(); i++ {
		if sk.isrough(i) || i == sk.N()-1 {
			runs = append(runs, makeRun(sk, at, i))
			at = i
		}
	}
	return runs
}

func makeRun(sk *skeleton, from, to int) *run {
	r := &run{whole: sk, start: from, end: to}
	tracer().Debugf("breaking run %d - %d of length %d: %s", from, to, r.N(), r)
	return r
}

// Extend a slice of pairs to make room for index i.
// Will do nothing if the slice is already large enough.
func extendC(arr []easement.Pair, i int, deflt easement.Pair) []easement.Pair {
	l := len(arr)
	if i >= l {
		arr = append(arr, make([]easement.Pair, i-l+1)...)
		for ; i >= l; i-- {
			arr[i] = deflt
		}
	}
	return arr
}

// Get a value from a slice if present, default value deflt otherwise.
func getC(arr []easement.Pair, i int, deflt easement.Pair) easement.Pair {
	if i >= len(arr) {
		return deflt
	}
	return arr[i]
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

func ptstring(p easement.Pair, iscontrol bool) string {
	if p.IsNaN() {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
