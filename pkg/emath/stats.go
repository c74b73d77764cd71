package emath

import (
	"fmt"
	"math"
)

// CLScale is log10(0xffff). Histogram channels are in [0, 0xffff], but the
// flame algorithm is based on colors in [0, 1]. Subtracting this from log
// counts performs the conversion.
const CLScale = 4.816473303765249707784354368778591143369496252776245939965515119387352293655218

// LWP is log10(200). Adding it performs a whitepoint adjustment.
const LWP = 2.301029995663981195213738

// Area returns the Cartesian area term for a histogram of the given size,
// rendered through a camera whose projective area is projArea. The aspect
// ratio is folded so the shorter side is always divided by the longer.
func Area(width, height int, projArea float64) (float64, error) {
	if height == 0 {
		return 0, fmt.Errorf("%w: area of zero-height histogram", ErrDomain)
	}
	if !(projArea > 0) {
		return 0, fmt.Errorf("%w: projective area %g is not positive", ErrDomain, projArea)
	}
	short, long := float64(width), float64(height)
	if short > long {
		short, long = long, short
	}
	aspect := short / long
	return aspect / projArea, nil
}

// LogQualityArea computes the log quality-area coefficient, which maps log
// hit counts into the nominal [0, 1] alpha range. histSize is the number of
// bins per channel, iters the total number of iterations of the render.
func LogQualityArea(histSize, brightness, area, iters float64) (float64, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{{"histogram size", histSize}, {"brightness", brightness}, {"area", area}, {"iterations", iters}} {
		if !(v.val > 0) {
			return 0, fmt.Errorf("%w: %s %g is not positive", ErrDomain, v.name, v.val)
		}
	}

	// Work in logs so that huge histograms and iteration counts don't lose
	// precision.
	q := math.Log10(histSize) - math.Log10(iters)
	return LWP - CLScale + math.Log10(brightness) - math.Log10(area) + q, nil
}
