package hist

import "fmt"

// BrightestAt finds the bin with the highest hit count. Ties go to the first
// bin in storage order, i.e. the lowest x + cols*y.
func (h *Histogram) BrightestAt() (x, y int, err error) {
	if h.IsEmpty() {
		return 0, 0, ErrEmpty
	}
	plane := h.Size()
	ns := h.counts[ChanN*plane : (ChanN+1)*plane]
	k := 0
	for i, n := range ns {
		if n > ns[k] {
			k = i
		}
	}
	return k % h.cols, k / h.cols, nil
}

// Brightest returns the bin with the highest hit count.
func (h *Histogram) Brightest() (Bin, error) {
	x, y, err := h.BrightestAt()
	if err != nil {
		return Bin{}, err
	}
	return h.bin(x, y), nil
}

// A Region is an osa x osa window of bins that together make up one
// oversampled output pixel.
type Region struct {
	h      *Histogram
	X0, Y0 int
	Size   int
}

// PixelRegion returns the window of bins behind output pixel (x, y) when the
// histogram was rendered with oversampling factor osa.
func (h *Histogram) PixelRegion(osa, x, y int) (Region, error) {
	if osa <= 0 {
		return Region{}, fmt.Errorf("%w: oversampling factor %d", ErrOutOfRange, osa)
	}
	x0, y0 := osa*x, osa*y
	if x < 0 || y < 0 || x0+osa > h.cols || y0+osa > h.rows {
		return Region{}, fmt.Errorf("%w: pixel (%d,%d) at osa %d outside %dx%d", ErrOutOfRange, x, y, osa, h.cols, h.rows)
	}
	return Region{h: h, X0: x0, Y0: y0, Size: osa}, nil
}

// Bin returns the bin at (i, j) relative to the window origin.
func (r Region) Bin(i, j int) (Bin, error) {
	if i < 0 || j < 0 || i >= r.Size || j >= r.Size {
		return Bin{}, fmt.Errorf("%w: (%d,%d) outside %dx%d region", ErrOutOfRange, i, j, r.Size, r.Size)
	}
	return r.h.bin(r.X0+i, r.Y0+j), nil
}

// Sum adds up every bin in the window.
func (r Region) Sum() Bin {
	var s Bin
	for j := 0; j < r.Size; j++ {
		for i := 0; i < r.Size; i++ {
			s = s.Add(r.h.bin(r.X0+i, r.Y0+j))
		}
	}
	return s
}
