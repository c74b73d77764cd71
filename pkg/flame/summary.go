package flame

import (
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

// Summary describes the spread of hit counts across a histogram, and the
// tone mapping the view will apply to it.
type Summary struct {
	Cols, Rows int
	Checksum   uint64
	Occupied   int // bins with at least one hit
	TotalHits  uint64

	Brightest       hist.Bin
	BrightestX      int
	BrightestY      int
	BrightestPixel  RGBA

	Area, LQA float64

	// Hit count quantiles over occupied bins, to 3 significant figures.
	HitsP50, HitsP90, HitsP99 int64

	// log10(N) over occupied bins
	LogDensityMean, LogDensityStdDev float64
}

// Summarize scans the whole histogram behind a view.
func Summarize(v *View) (Summary, error) {
	h := v.Histogram()
	s := Summary{
		Cols:     h.Cols(),
		Rows:     h.Rows(),
		Checksum: h.Checksum(),
		Area:     v.Area(),
		LQA:      v.LQA(),
	}

	x, y, err := h.BrightestAt()
	if err != nil {
		return s, fmt.Errorf("summarize: %w", err)
	}
	s.BrightestX, s.BrightestY = x, y
	if s.Brightest, err = h.Brightest(); err != nil {
		return s, fmt.Errorf("summarize: %w", err)
	}
	s.BrightestPixel = v.Resolve(s.Brightest)

	top := int64(s.Brightest.N)
	if top > math.MaxInt64/2 || top < 0 {
		top = math.MaxInt64 / 2
	}
	if top < 2 {
		top = 2
	}
	hits := hdrhistogram.New(1, top, 3)

	logs := make([]float64, 0, h.Size())
	for y := 0; y < h.Rows(); y++ {
		for x := 0; x < h.Cols(); x++ {
			n := h.At(x, y, hist.ChanN)
			if n == 0 {
				continue
			}
			s.Occupied++
			s.TotalHits += n
			if n > uint64(top) {
				n = uint64(top)
			}
			if err := hits.RecordValue(int64(n)); err != nil {
				return s, fmt.Errorf("summarize: record %d: %v", n, err)
			}
			logs = append(logs, math.Log10(float64(n)))
		}
	}

	if s.Occupied > 0 {
		s.HitsP50 = hits.ValueAtQuantile(50)
		s.HitsP90 = hits.ValueAtQuantile(90)
		s.HitsP99 = hits.ValueAtQuantile(99)
		s.LogDensityMean, s.LogDensityStdDev = stat.MeanStdDev(logs, nil)
		if len(logs) == 1 {
			s.LogDensityStdDev = 0
		}
	}

	return s, nil
}

// DensityGrid holds log10(N) for each bin, zero for empty bins.
func DensityGrid(h *hist.Histogram) emath.FloatGrid {
	fg := emath.NewFloatGrid(h.Cols(), h.Rows())
	for y := 0; y < h.Rows(); y++ {
		for x := 0; x < h.Cols(); x++ {
			if n := h.At(x, y, hist.ChanN); n > 0 {
				fg.Set(x, y, math.Log10(float64(n)))
			}
		}
	}
	return fg
}

func (s Summary) String() string {
	str := fmt.Sprintf("Histogram          : %dx%d bins, xxh64 %016x\n", s.Cols, s.Rows, s.Checksum)
	occ := 0.0
	if s.Cols*s.Rows > 0 {
		occ = 100 * float64(s.Occupied) / float64(s.Cols*s.Rows)
	}
	str += fmt.Sprintf("Occupied bins      : %d (%.2f%%), %d hits\n", s.Occupied, occ, s.TotalHits)
	str += fmt.Sprintf("Brightest @(%d,%d) : %s -> %s\n", s.BrightestX, s.BrightestY, s.Brightest, s.BrightestPixel)
	str += fmt.Sprintf("Area, LQA          : %g, %g\n", s.Area, s.LQA)
	str += fmt.Sprintf("Hits p50/p90/p99   : %d / %d / %d\n", s.HitsP50, s.HitsP90, s.HitsP99)
	str += fmt.Sprintf("log10(N)           : mean %.4f, stddev %.4f\n", s.LogDensityMean, s.LogDensityStdDev)
	return str
}
