// Package flame tone maps flame histograms into images.
package flame

import (
	"fmt"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

// ToneMap holds the parameters describing conversion from histogram bin
// counts to color and alpha channels.
type ToneMap struct {
	// Brightness is a multiplier for the log-alpha channel.
	Brightness float64
	// Gamma is a nonlinear scaler that boosts low- and high-count bins
	// differently.
	Gamma float64
	// GammaMin is the alpha below which the blended gamma formula is used.
	// Should be in [0, 1].
	GammaMin float64
}

func DefaultToneMap() ToneMap {
	return ToneMap{Brightness: 1, Gamma: 1, GammaMin: 0}
}

func (tm ToneMap) Validate() error {
	if !(tm.Brightness > 0) {
		return fmt.Errorf("%w: brightness %g", emath.ErrDomain, tm.Brightness)
	}
	if !(tm.Gamma > 0) {
		return fmt.Errorf("%w: gamma %g", emath.ErrDomain, tm.Gamma)
	}
	if !(tm.GammaMin >= 0 && tm.GammaMin <= 1) {
		return fmt.Errorf("%w: gamma threshold %g outside [0,1]", emath.ErrDomain, tm.GammaMin)
	}
	return nil
}

// Metadata describes how the renderer produced a histogram.
type Metadata struct {
	OSA      int     // oversampling factor per axis
	Iters    int64   // total iterations, not hits
	ProjArea float64 // projective area of the camera's linear transform
}

func DefaultMetadata() Metadata {
	return Metadata{OSA: 1, Iters: 25000, ProjArea: 1}
}

func (md Metadata) Validate() error {
	if md.OSA < 1 {
		return fmt.Errorf("%w: oversampling factor %d", emath.ErrDomain, md.OSA)
	}
	if md.Iters <= 0 {
		return fmt.Errorf("%w: iterations %d", emath.ErrDomain, md.Iters)
	}
	if !(md.ProjArea > 0) {
		return fmt.Errorf("%w: projective area %g", emath.ErrDomain, md.ProjArea)
	}
	return nil
}

// A View wraps a histogram with everything needed to resolve its bins into
// pixels. The log quality-area coefficient is worked out once, in NewView.
// Views are immutable, and the histogram must not change under them.
type View struct {
	h     *hist.Histogram
	tm    ToneMap
	md    Metadata
	curve emath.Curve

	area, lqa float64
}

// NewView builds a view using the ACES filmic curve.
func NewView(h *hist.Histogram, md Metadata, tm ToneMap) (*View, error) {
	return NewViewCurve(h, md, tm, emath.Filmic)
}

// NewViewCurve builds a view using the given alpha curve. A nil curve is
// emath.Linear.
func NewViewCurve(h *hist.Histogram, md Metadata, tm ToneMap, curve emath.Curve) (*View, error) {
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if curve == nil {
		curve = emath.Linear
	}

	area, err := emath.Area(h.Cols(), h.Rows(), md.ProjArea)
	if err != nil {
		return nil, fmt.Errorf("view area: %w", err)
	}
	lqa, err := emath.LogQualityArea(float64(h.Size()), tm.Brightness, area, float64(md.Iters))
	if err != nil {
		return nil, fmt.Errorf("view lqa: %w", err)
	}

	return &View{h: h, tm: tm, md: md, curve: curve, area: area, lqa: lqa}, nil
}

func (v *View) Histogram() *hist.Histogram { return v.h }
func (v *View) ToneMap() ToneMap            { return v.tm }
func (v *View) Metadata() Metadata          { return v.md }
func (v *View) OSA() int                    { return v.md.OSA }
func (v *View) Area() float64               { return v.area }
func (v *View) LQA() float64                { return v.lqa }

// Contrast is the brightness rescaled into the 16 bit channel domain, which
// is what CLScale in the lqa assumes.
func (v *View) Contrast() float64 { return 65535 * v.tm.Brightness }

// Pixel resolves the bin at (x, y).
func (v *View) Pixel(x, y int) (RGBA, error) {
	b, err := v.h.Bin(x, y)
	if err != nil {
		return RGBA{}, err
	}
	return v.Resolve(b), nil
}

// Resolve runs an arbitrary bin, e.g. a summed region, through the view's
// tone mapping.
func (v *View) Resolve(b hist.Bin) RGBA {
	return ResolveBinCurve(v.curve, b, v.Contrast(), v.lqa, v.tm.Gamma, v.tm.GammaMin)
}

func (v *View) String() string {
	return fmt.Sprintf("View[%s, osa %d, iters %d, projarea %g, area %g, lqa %g, tonemap %+v]",
		v.h, v.md.OSA, v.md.Iters, v.md.ProjArea, v.area, v.lqa, v.tm)
}
