// Package hist holds the raw R, G, B, N accumulator counts of a flame
// histogram, and reads and writes the histogram dump format.
package hist

import (
	"fmt"
	"math/bits"
)

// Channel indexes along the third histogram axis.
const (
	ChanR = iota
	ChanG
	ChanB
	ChanN

	NumChannels
)

// A Bin is one histogram cell. R, G and B are accumulated color, not
// divided by the hit count N.
type Bin struct {
	R, G, B, N uint64
}

// Add sums two bins, e.g. to reduce an oversampled region to one pixel.
func (b Bin) Add(o Bin) Bin {
	return Bin{b.R + o.R, b.G + o.G, b.B + o.B, b.N + o.N}
}

func (b Bin) String() string {
	return fmt.Sprintf("[R=%d G=%d B=%d N=%d]", b.R, b.G, b.B, b.N)
}

// Histogram is a dense cols x rows x 4 array of counts. Counts are laid out
// column-major, so [x, y, c] lives at x + cols*y + cols*rows*c; this is the
// order of the dump format, with each channel a contiguous plane.
//
// Once built a Histogram is never modified, and can be shared between
// goroutines freely.
type Histogram struct {
	cols, rows int
	counts     []uint64
	checksum   uint64
}

// overflows reports whether a cols x rows histogram needs more bytes than an
// int can count.
func overflows(cols, rows uint64) bool {
	if cols > uint64(maxInt) || rows > uint64(maxInt) {
		return true
	}
	hi, lo := bits.Mul64(cols, rows)
	if hi != 0 {
		return true
	}
	// 4 channels of 8 bytes each.
	hi, lo = bits.Mul64(lo, NumChannels*8)
	return hi != 0 || lo > uint64(maxInt)
}

const maxInt = int(^uint(0) >> 1)

// New allocates a zeroed histogram.
func New(cols, rows int) (*Histogram, error) {
	if cols < 0 || rows < 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrOutOfRange, cols, rows)
	}
	if overflows(uint64(cols), uint64(rows)) {
		return nil, fmt.Errorf("%w: size %dx%d", ErrTooLarge, cols, rows)
	}
	return &Histogram{
		cols:   cols,
		rows:   rows,
		counts: make([]uint64, cols*rows*NumChannels),
	}, nil
}

// FromBins builds a histogram by asking f for every bin.
func FromBins(cols, rows int, f func(x, y int) Bin) (*Histogram, error) {
	h, err := New(cols, rows)
	if err != nil {
		return nil, err
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			h.set(x, y, f(x, y))
		}
	}
	return h, nil
}

func (h *Histogram) set(x, y int, b Bin) {
	i := h.index(x, y)
	plane := h.cols * h.rows
	h.counts[i] = b.R
	h.counts[i+plane] = b.G
	h.counts[i+2*plane] = b.B
	h.counts[i+3*plane] = b.N
}

func (h *Histogram) index(x, y int) int { return x + h.cols*y }

func (h *Histogram) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < h.cols && y < h.rows
}

// Cols returns the horizontal size of the histogram in bins.
func (h *Histogram) Cols() int { return h.cols }

// Rows returns the vertical size of the histogram in bins.
func (h *Histogram) Rows() int { return h.rows }

// Size is the number of bins per channel.
func (h *Histogram) Size() int { return h.cols * h.rows }

// IsEmpty returns true if the histogram has zero size.
func (h *Histogram) IsEmpty() bool { return h.Size() == 0 }

// Checksum is the xxhash64 of the dump the histogram was read from, or 0 if
// it was built in memory.
func (h *Histogram) Checksum() uint64 { return h.checksum }

// Aspect returns cols/rows. If the histogram is empty, the result is 0.
func (h *Histogram) Aspect() float64 {
	if h.IsEmpty() {
		return 0
	}
	return float64(h.cols) / float64(h.rows)
}

// At returns a single count. It panics if any index is out of range.
func (h *Histogram) At(x, y, c int) uint64 {
	if !h.inBounds(x, y) || c < 0 || c >= NumChannels {
		panic(fmt.Sprintf("hist: At(%d,%d,%d) outside %dx%dx%d", x, y, c, h.cols, h.rows, NumChannels))
	}
	return h.counts[h.index(x, y)+c*h.cols*h.rows]
}

// Bin returns all four channels at a position.
func (h *Histogram) Bin(x, y int) (Bin, error) {
	if !h.inBounds(x, y) {
		return Bin{}, fmt.Errorf("%w: bin (%d,%d) outside %dx%d", ErrOutOfRange, x, y, h.cols, h.rows)
	}
	return h.bin(x, y), nil
}

func (h *Histogram) bin(x, y int) Bin {
	i := h.index(x, y)
	plane := h.cols * h.rows
	return Bin{
		R: h.counts[i],
		G: h.counts[i+plane],
		B: h.counts[i+2*plane],
		N: h.counts[i+3*plane],
	}
}

func (h *Histogram) String() string {
	return fmt.Sprintf("Histogram[%dx%d, xxh64 %016x]", h.cols, h.rows, h.checksum)
}
