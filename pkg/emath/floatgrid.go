package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
)

// A FloatGrid is a grid of floats, with some operations
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

// MinMax returns the extremes of the finite values in the grid. An all-NaN or
// empty grid gives (0, 0).
func (fg *FloatGrid) MinMax() (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range fg.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if min > max {
		return 0, 0
	}
	return min, max
}

// FindMinMaxAtPercentile ignores zero values, which are the empty bins.
func (fg *FloatGrid) FindMinMaxAtPercentile(minPrct, maxPrct float64) (float64, float64) {
	vals := []float64{}
	for _, v := range fg.values {
		if v != 0.0 && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}

	sort.Float64s(vals)

	iMin := int(minPrct * float64(len(vals)))
	iMax := int(maxPrct * float64(len(vals)))
	if iMin < 0 {
		iMin = 0
	}
	if iMax >= len(vals) {
		iMax = len(vals) - 1
	}

	return vals[iMin], vals[iMax]
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// Image renders a grayscale of the grid, spanning the range of values in the
// grid and gamma expanding the gray to look normal for human vision.
func (fg *FloatGrid) Image() *image.RGBA64 {
	min, max := fg.MinMax()
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			v := fg.Get(x, y)
			if math.IsNaN(v) {
				v = min
			}
			gray := Unit16(GammaExpandF64((v - min) / span))
			img.SetRGBA64(x, y, color.RGBA64{gray, gray, gray, 0xFFFF})
		}
	}
	return img
}

// ToImg saves the grayscale from Image with a caption drawn over it.
func (fg *FloatGrid) ToImg(title, filename string) error {
	dc := gg.NewContextForImage(fg.Image())
	dc.SetRGB(1, 0.5, 0)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save grid '%s': %v", filename, err)
	}
	return nil
}
