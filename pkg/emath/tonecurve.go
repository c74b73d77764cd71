package emath

import (
	"fmt"
	"math"
	"sort"
)

// A Curve compresses a raw alpha value before gamma correction.
type Curve func(float64) float64

var (
	curves = map[string]Curve{
		"aces":   Filmic,
		"linear": Linear,
	}

	errGammaNotPositive     = fmt.Errorf("%w: gamma is not positive", ErrDomain)
	errThresholdNotPositive = fmt.Errorf("%w: gamma threshold is not positive", ErrDomain)
)

// ListCurves names the curves CurveByName knows about.
func ListCurves() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurveByName looks up a tone curve. The empty name selects Filmic.
func CurveByName(name string) (Curve, error) {
	if name == "" {
		return Filmic, nil
	}
	if c, ok := curves[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no curve named '%s', wanted one of %v", name, ListCurves())
}

// AlphaScale is the log-density alpha of a bin with hit count n, before any
// curve or gamma is applied.
func AlphaScale(n, contrast, lqa float64) (float64, error) {
	if !(n > 0) {
		return 0, fmt.Errorf("%w: alpha of hit count %g", ErrDomain, n)
	}
	return contrast * (math.Log10(n) + lqa), nil
}

// Filmic is Krzysztof Narkowicz's approximation of the ACES filmic tone
// mapping curve.
// https://knarkowicz.wordpress.com/2016/01/06/aces-filmic-tone-mapping-curve/
func Filmic(x float64) float64 {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return (x * (a*x + b)) / (x*(c*x+d) + e)
}

// Linear leaves alpha untouched.
func Linear(x float64) float64 { return x }

// GammaCorrect raises a to 1/gamma. Below threshold the result is blended
// linearly towards threshold^(1/gamma - 1) so that small values don't blow up
// when 1/gamma < 1. A negative a in the blended branch gives NaN.
func GammaCorrect(a, gamma, threshold float64) (float64, error) {
	if !(gamma > 0) {
		return 0, errGammaNotPositive
	}
	exp := 1 / gamma
	if a >= threshold {
		return math.Pow(a, exp), nil
	}
	if !(threshold > 0) {
		return 0, errThresholdNotPositive
	}
	p := a / threshold
	return p*math.Pow(a, exp) + (1-p)*math.Pow(threshold, exp-1), nil
}

// Unit16 maps a nominally [0, 1] channel onto [0, 0xffff], clamping.
func Unit16(c float64) uint16 {
	c *= 65536
	switch {
	case !(c > 0):
		return 0
	case c >= 65535:
		return 65535
	default:
		return uint16(c)
	}
}
