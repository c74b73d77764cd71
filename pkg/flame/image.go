package flame

import (
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

// A Source is anything that resolves to a rectangle of pixels.
type Source interface {
	Bounds() image.Rectangle
	PixelAt(x, y int) RGBA
}

// RGBA64 clamps the pixel into 16 bit channels. Color channels are clamped to
// alpha, to keep the result a valid premultiplied color.
func (p RGBA) RGBA64() color.RGBA64 {
	a := emath.Unit16(p.A)
	if a == 0 {
		return color.RGBA64{}
	}
	c := func(v float64) uint16 {
		if u := emath.Unit16(v); u < a {
			return u
		}
		return a
	}
	return color.RGBA64{R: c(p.R), G: c(p.G), B: c(p.B), A: a}
}

// HDR drops alpha and negative color, leaving the color unclamped above.
func (p RGBA) HDR() hdrcolor.RGB {
	c := func(v float64) float64 {
		if !(v > 0) {
			return 0
		}
		return v
	}
	return hdrcolor.RGB{R: c(p.R), G: c(p.G), B: c(p.B)}
}

// SRGB applies the sRGB transfer function to the color channels, clamping
// them into [0, 1] first.
func (p RGBA) SRGB() RGBA {
	c := func(v float64) float64 {
		switch {
		case !(v > 0):
			return 0
		case v > 1:
			return 1
		}
		return emath.GammaExpandF64(v)
	}
	return RGBA{R: c(p.R), G: c(p.G), B: c(p.B), A: p.A}
}

// Implement image.Image, one pixel per bin. Note that At is fairly
// expensive; use Render for whole images.
func (v *View) ColorModel() color.Model { return color.RGBA64Model }
func (v *View) Bounds() image.Rectangle { return image.Rect(0, 0, v.h.Cols(), v.h.Rows()) }
func (v *View) At(x, y int) color.Color { return v.RGBA64At(x, y) }
func (v *View) RGBA64At(x, y int) color.RGBA64 {
	return v.PixelAt(x, y).RGBA64()
}

// Implement hdr.Image
func (v *View) HDRAt(x, y int) hdrcolor.Color { return v.PixelAt(x, y).HDR() }
func (v *View) Size() int                     { return v.h.Size() }

// PixelAt is Pixel, but transparent outside the histogram.
func (v *View) PixelAt(x, y int) RGBA {
	p, err := v.Pixel(x, y)
	if err != nil {
		return RGBA{}
	}
	return p
}

// Downsampled is a view at output resolution: each pixel is the sum of the
// osa x osa bins behind it, resolved with the view's tone mapping. Histogram
// edges that don't fill a whole pixel are dropped.
type Downsampled struct {
	*View
}

// Downsample returns the view at output resolution. With osa 1 it has the
// same pixels as the view itself.
func (v *View) Downsample() Downsampled { return Downsampled{v} }

func (d Downsampled) Bounds() image.Rectangle {
	osa := d.md.OSA
	return image.Rect(0, 0, d.h.Cols()/osa, d.h.Rows()/osa)
}

func (d Downsampled) Size() int { return d.Bounds().Dx() * d.Bounds().Dy() }

func (d Downsampled) At(x, y int) color.Color         { return d.RGBA64At(x, y) }
func (d Downsampled) RGBA64At(x, y int) color.RGBA64  { return d.PixelAt(x, y).RGBA64() }
func (d Downsampled) HDRAt(x, y int) hdrcolor.Color   { return d.PixelAt(x, y).HDR() }

func (d Downsampled) PixelAt(x, y int) RGBA {
	r, err := d.h.PixelRegion(d.md.OSA, x, y)
	if err != nil {
		return RGBA{}
	}
	return d.Resolve(r.Sum())
}

// Region is the raw window of bins behind output pixel (x, y).
func (d Downsampled) Region(x, y int) (hist.Region, error) {
	return d.h.PixelRegion(d.md.OSA, x, y)
}
