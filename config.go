package easement

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// Config holds the tunables of the engine. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	PhantomFar        float64 // distance of the outer phantom knot at a straight end
	PhantomNear       float64 // distance of the inner phantom knot at a straight end
	PhantomFarAngle   float64 // rotation of the outer phantom knot at a curved end, radians
	PhantomNearAngle  float64 // rotation of the inner phantom knot at a curved end, radians
	MaxWinding        float64 // winding above this (radians) is reported as excessive
	MaxCurvatureRate  float64 // rate of change of curvature above this is reported
	MinRadiusSentinel float64 // MinRadius of a tree without arcs
	MinLength         float64 // split pieces shorter than this are slivers
	OnCurveTolerance  float64 // max distance of a position from the curve it is said to be on
	SplitSamples      int     // number of t samples when mapping a point back to a Bézier parameter
	MaxHandOffs       int     // max number of tracks a single Follow may cross
	TrackWidth        float64 // footprint width for clearance checks; 0 disables them
}

// RadiusSentinel is the default minimum radius reported for curves without
// any arcs.
const RadiusSentinel = 100000.0

// DefaultConfig returns the engine's built-in constants.
func DefaultConfig() Config {
	return Config{
		PhantomFar:        10,
		PhantomNear:       5,
		PhantomFarAngle:   10 * Deg2Rad,
		PhantomNearAngle:  5 * Deg2Rad,
		MaxWinding:        4 * 360 * Deg2Rad,
		MaxCurvatureRate:  0.01,
		MinRadiusSentinel: RadiusSentinel,
		MinLength:         0.1,
		OnCurveTolerance:  1.0,
		SplitSamples:      100,
		MaxHandOffs:       64,
		TrackWidth:        0,
	}
}

// Configuration keys understood by LoadConfig. Angles are given in degrees.
const (
	KeyPhantomFar        = "easement.phantom.far"
	KeyPhantomNear       = "easement.phantom.near"
	KeyPhantomFarAngle   = "easement.phantom.farangle"
	KeyPhantomNearAngle  = "easement.phantom.nearangle"
	KeyMaxWinding        = "easement.maxwinding"
	KeyMaxCurvatureRate  = "easement.maxcurvaturerate"
	KeyMinRadiusSentinel = "easement.minradius.sentinel"
	KeyMinLength         = "easement.minlength"
	KeyOnCurveTolerance  = "easement.oncurve"
	KeySplitSamples      = "easement.split.samples"
	KeyMaxHandOffs       = "easement.handoffs"
	KeyTrackWidth        = "easement.trackwidth"
	KeyTraceGraphics     = "tracing.graphics"
	KeyTraceEasement     = "tracing.easement"
)

// LoadConfig overlays the defaults with the values found in conf. Keys which
// are not set, or whose values do not parse, keep their default.
func LoadConfig(conf schuko.Configuration) Config {
	c := DefaultConfig()
	if conf == nil {
		return c
	}
	c.PhantomFar = getFloat(conf, KeyPhantomFar, c.PhantomFar)
	c.PhantomNear = getFloat(conf, KeyPhantomNear, c.PhantomNear)
	c.PhantomFarAngle = getFloat(conf, KeyPhantomFarAngle, c.PhantomFarAngle/Deg2Rad) * Deg2Rad
	c.PhantomNearAngle = getFloat(conf, KeyPhantomNearAngle, c.PhantomNearAngle/Deg2Rad) * Deg2Rad
	c.MaxWinding = getFloat(conf, KeyMaxWinding, c.MaxWinding/Deg2Rad) * Deg2Rad
	c.MaxCurvatureRate = getFloat(conf, KeyMaxCurvatureRate, c.MaxCurvatureRate)
	c.MinRadiusSentinel = getFloat(conf, KeyMinRadiusSentinel, c.MinRadiusSentinel)
	c.MinLength = getFloat(conf, KeyMinLength, c.MinLength)
	c.OnCurveTolerance = getFloat(conf, KeyOnCurveTolerance, c.OnCurveTolerance)
	c.TrackWidth = getFloat(conf, KeyTrackWidth, c.TrackWidth)
	if conf.IsSet(KeySplitSamples) {
		if n := conf.GetInt(KeySplitSamples); n > 1 {
			c.SplitSamples = n
		}
	}
	if conf.IsSet(KeyMaxHandOffs) {
		if n := conf.GetInt(KeyMaxHandOffs); n >= 0 {
			c.MaxHandOffs = n
		}
	}
	tracer().Debugf("loaded config %+v", c)
	return c
}

// ApplyTracing sets the trace levels of the engine's tracers from conf.
func ApplyTracing(conf schuko.Configuration) {
	if conf == nil {
		return
	}
	for _, key := range []string{KeyTraceGraphics, KeyTraceEasement} {
		if !conf.IsSet(key) {
			continue
		}
		level := tracing.TraceLevelFromString(conf.GetString(key))
		tracing.Select(strings.TrimPrefix(key, "tracing.")).SetTraceLevel(level)
	}
}

func getFloat(conf schuko.Configuration, key string, deflt float64) float64 {
	if !conf.IsSet(key) {
		return deflt
	}
	s := strings.TrimSpace(conf.GetString(key))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(f) {
		tracer().Errorf("config key %s: cannot use %q, keeping %g", key, s, deflt)
		return deflt
	}
	return f
}
