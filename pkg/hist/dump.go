package hist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// The dump format is a 16 byte header holding cols and rows, followed by
// every bin's R count, then every G, then every B, then every N. Within a
// plane x varies fastest. All values are 8 byte little-endian integers.
const headerSize = 16

// chunkCounts is how many counts Read decodes per read call.
const chunkCounts = 8192

// Read parses a histogram dump. It reads exactly as many bytes as the header
// declares and no more.
func Read(r io.Reader) (*Histogram, error) {
	d := xxhash.New()
	tr := io.TeeReader(r, d)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(tr, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header", ErrTruncated)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := binary.LittleEndian.Uint64(hdr[0:8])
	rows := binary.LittleEndian.Uint64(hdr[8:16])
	if overflows(cols, rows) {
		return nil, fmt.Errorf("%w: header declares %dx%d", ErrTooLarge, cols, rows)
	}

	// counts grows with the bytes read, never from the header alone.
	total := int(cols) * int(rows) * NumChannels
	counts := make([]uint64, 0, min(total, chunkCounts))
	buf := make([]byte, 8*chunkCounts)
	for len(counts) < total {
		n := min(total-len(counts), chunkCounts)
		k, err := io.ReadFull(tr, buf[:8*n])
		for i := 0; i < k/8; i++ {
			counts = append(counts, binary.LittleEndian.Uint64(buf[8*i:]))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: got %d of %d counts", ErrTruncated, len(counts), total)
			}
			return nil, fmt.Errorf("read counts: %w", err)
		}
	}

	h := &Histogram{cols: int(cols), rows: int(rows), counts: counts}
	h.checksum = d.Sum64()
	return h, nil
}

// ReadFile reads a histogram dump from a file.
func ReadFile(filename string) (*Histogram, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open '%s': %w", filename, err)
	}
	defer f.Close()

	h, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read '%s': %w", filename, err)
	}
	return h, nil
}

// WriteTo dumps the histogram in the format Read consumes.
func (h *Histogram) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)
	b := make([]byte, 8)

	put := func(v uint64) error {
		binary.LittleEndian.PutUint64(b, v)
		k, err := bw.Write(b)
		n += int64(k)
		return err
	}

	if err := put(uint64(h.cols)); err != nil {
		return n, err
	}
	if err := put(uint64(h.rows)); err != nil {
		return n, err
	}
	for _, v := range h.counts {
		if err := put(v); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
