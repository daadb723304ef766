package clearance

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"

	"github.com/ankon/xtrkcad-sub003/seg"
)

func TestFootprintArea(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := seg.NewLine(curve.Pt(0, 0), curve.Pt(100, 0))
	fp := Footprint(line, 4)
	if len(fp) != 1 || len(fp[0]) != 4 {
		t.Fatalf("expected a rectangle, got %v", fp)
	}
	assert.InDelta(t, 400, Area(fp), 1e-9)
	arc := seg.NewArc(curve.Pt(0, 50), 50, -math.Pi/2, math.Pi/2)
	assert.InDelta(t, math.Pi/2*50*4, Area(Footprint(arc, 4)), 1.0)
	assert.Empty(t, Footprint(seg.Branch{}, 4))
}

func TestOverlaps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := seg.NewLine(curve.Pt(0, 0), curve.Pt(100, 0))
	far := seg.NewLine(curve.Pt(0, 10), curve.Pt(100, 10))
	ok, _ := Overlaps(a, far, 4)
	assert.False(t, ok)
	beside := seg.NewLine(curve.Pt(10, 3), curve.Pt(90, 3))
	ok, area := Overlaps(a, beside, 4)
	assert.True(t, ok)
	assert.InDelta(t, 80, area, 1e-6)
}

func TestOverlapsAcrossLeaves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	track := seg.Branch{
		seg.NewLine(curve.Pt(-50, 0), curve.Pt(0, 0)),
		seg.NewArc(curve.Pt(0, 50), 50, -math.Pi/2, math.Pi/2),
	}
	crossing := seg.NewLine(curve.Pt(30, 0), curve.Pt(30, 20))
	ok, _ := Overlaps(track, crossing, 4)
	assert.True(t, ok)
	aside := seg.NewLine(curve.Pt(-50, -20), curve.Pt(0, -20))
	ok, _ = Overlaps(track, aside, 4)
	assert.False(t, ok)
}
