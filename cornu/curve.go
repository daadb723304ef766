package cornu

import (
	"fmt"

	"honnef.co/go/curve"

	easement "github.com/ankon/xtrkcad-sub003"
	"github.com/ankon/xtrkcad-sub003/bezier"
	"github.com/ankon/xtrkcad-sub003/metrics"
	"github.com/ankon/xtrkcad-sub003/seg"
)

// Curve is a compound curve between two ends.
//
// Methods which change the ends re-fit the curve. If the fit fails they
// return the error and leave the curve as it was.
type Curve struct {
	End    [2]End
	Curves []*bezier.Curve
	fitter Fitter
}

// Assemble builds a compound curve from existing Bézier curves, to be re-fit
// by f. The curves are taken over, not copied.
func (f Fitter) Assemble(end0, end1 End, curves []*bezier.Curve) *Curve {
	return &Curve{End: [2]End{end0, end1}, Curves: curves, fitter: f}
}

// Fitter returns the fitter the curve was made with.
func (c *Curve) Fitter() Fitter {
	return c.fitter
}

// Clone returns a deep copy.
func (c *Curve) Clone() *Curve {
	d := &Curve{End: c.End, fitter: c.fitter, Curves: make([]*bezier.Curve, len(c.Curves))}
	for i, b := range c.Curves {
		d.Curves[i] = b.Clone()
	}
	return d
}

// Node returns the flattened curve as a segment tree, one branch per Bézier.
func (c *Curve) Node() seg.Node {
	b := make(seg.Branch, len(c.Curves))
	for i, bz := range c.Curves {
		b[i] = bz.Node()
	}
	return b
}

// Length is the length of the flattened curve.
func (c *Curve) Length() float64 {
	return metrics.Length(c.Node())
}

// MinRadius is the tightest radius along the curve.
func (c *Curve) MinRadius() float64 {
	return metrics.MinRadius(c.Node(), c.fitter.conf().MinRadiusSentinel)
}

// Validate reports curves that are valid but impractical.
func (c *Curve) Validate() []metrics.Warning {
	return metrics.Validate(c.Node(), metrics.LimitsFrom(c.fitter.conf()))
}

func (c *Curve) refit(ends [2]End) error {
	fitted, err := c.fitter.fit(ends)
	if err != nil {
		return err
	}
	c.End, c.Curves = fitted.End, fitted.Curves
	return nil
}

// Rebuild re-fits the curve from its ends.
func (c *Curve) Rebuild() error {
	return c.refit(c.End)
}

// Bind attaches end i to a neighbouring track whose end is ec, and re-fits.
func (c *Curve) Bind(i int, ec easement.EndpointConstraint) error {
	if i != 0 && i != 1 {
		return fmt.Errorf("cornu: no end %d", i)
	}
	ends := c.End
	ends[i] = End{EndpointConstraint: ec, Bound: true}
	return c.refit(ends)
}

// AdjustEndPoint replaces end i, keeping its bound flag, and re-fits.
func (c *Curve) AdjustEndPoint(i int, ec easement.EndpointConstraint) error {
	if i != 0 && i != 1 {
		return fmt.Errorf("cornu: no end %d", i)
	}
	ends := c.End
	ends[i].EndpointConstraint = ec
	return c.refit(ends)
}

// Transform moves, rotates, scales or mirrors the curve. The ends are mapped
// and the curve is re-fit.
func (c *Curve) Transform(aff curve.Affine) error {
	ends := c.End
	for i := range ends {
		ends[i].EndpointConstraint = ends[i].Transform(aff)
	}
	return c.refit(ends)
}

// Reverse turns the direction of travel around. No re-fit is needed.
func (c *Curve) Reverse() {
	c.End[0], c.End[1] = c.End[1], c.End[0]
	for i := range c.End {
		c.End[i].EndpointConstraint = c.End[i].Reversed()
	}
	n := len(c.Curves)
	for i := 0; i < n/2; i++ {
		c.Curves[i], c.Curves[n-1-i] = c.Curves[n-1-i], c.Curves[i]
	}
	for _, b := range c.Curves {
		b.Reverse()
	}
}

// BoundingBox is the union of the boxes of all Bézier curves.
func (c *Curve) BoundingBox() curve.Rect {
	if len(c.Curves) == 0 {
		return curve.NewRectFromPoints(c.End[0].Pos, c.End[1].Pos)
	}
	box := c.Curves[0].BoundingBox()
	for _, b := range c.Curves[1:] {
		box = box.Union(b.BoundingBox())
	}
	return box
}

func (c *Curve) String() string {
	return fmt.Sprintf("cornu[%s -> %s, %d curves]", c.End[0].EndpointConstraint,
		c.End[1].EndpointConstraint, len(c.Curves))
}
