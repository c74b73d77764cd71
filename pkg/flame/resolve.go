package flame

import (
	"fmt"
	"math"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

// RGBA is a resolved pixel. Channels are nominally in [0, 1] but are not
// clamped. The zero value is transparent black.
type RGBA struct {
	R, G, B, A float64
}

func (p RGBA) String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f, %12.10f]", p.R, p.G, p.B, p.A)
}

// ResolveBin turns one histogram bin into a pixel, applying the ACES filmic
// curve to alpha before gamma correction. br is the brightness scaled into
// the 16 bit channel domain.
func ResolveBin(b hist.Bin, br, lqa, gamma, threshold float64) RGBA {
	return ResolveBinCurve(emath.Filmic, b, br, lqa, gamma, threshold)
}

// ResolveBinCurve is ResolveBin with a choice of curve; a nil curve is
// emath.Linear. Degenerate bins (no hits, non-positive or non-finite alpha,
// or parameters outside the gamma domain) come out transparent black.
func ResolveBinCurve(curve emath.Curve, b hist.Bin, br, lqa, gamma, threshold float64) RGBA {
	if b.N == 0 {
		return RGBA{}
	}
	if curve == nil {
		curve = emath.Linear
	}

	n := float64(b.N)
	a, err := emath.AlphaScale(n, br, lqa)
	if err != nil {
		return RGBA{}
	}
	ag, err := emath.GammaCorrect(curve(a), gamma, threshold)
	if err != nil || !(ag > 0) || math.IsInf(ag, 0) {
		return RGBA{}
	}

	s := a / n
	return RGBA{
		R: float64(b.R) * s,
		G: float64(b.G) * s,
		B: float64(b.B) * s,
		A: ag,
	}
}
