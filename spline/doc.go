/*
Package spline finds smooth curves through sequences of tagged knots.

Knots are tagged to tell the solver how the curve behaves there. The solver
breaks the knot sequence into runs at rough knots (Right, Left and Corner).
Runs between a Right knot and the Left knot directly following it become a
spiral: a curve whose curvature varies as a cubic polynomial of arc length,
matching tangent and curvature at both knots. This is what makes an easement
between two track ends. All other runs are interpolated with John Hobby's
algorithm, as MetaFont does it:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

	Computers & Typesetting, Vol. B & D.

Usage

Clients build a knot slice and call Solve:

	path, err := spline.Solve([]spline.Knot{
	    {Pt: curve.Pt(-10, 0), Tag: spline.Open},
	    {Pt: curve.Pt(-5, 0), Tag: spline.G2},
	    {Pt: curve.Pt(0, 0), Tag: spline.Right},
	    {Pt: curve.Pt(100, 0), Tag: spline.Left},
	    {Pt: curve.Pt(105, 0), Tag: spline.G2},
	    {Pt: curve.Pt(110, 0), Tag: spline.EndOpen},
	})

The result is a Bézier path together with the element index reaching each
knot, so that clients can cut out the part between two knots with
Path.Between.

Caveats

Spirals are found by Newton iteration. Very tight turns between knots which
are close together may fail to converge; Solve then returns
ErrNoConvergence rather than a poor curve.
*/
package spline
