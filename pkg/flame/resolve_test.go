package flame

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

func TestResolveZeroCountIsTransparent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		b := hist.Bin{R: rng.Uint64(), G: rng.Uint64(), B: rng.Uint64()}
		require.Equal(t, RGBA{}, ResolveBin(b, rng.Float64()*65535, rng.Float64()*10-5, rng.Float64()*3+0.1, rng.Float64()))
		require.Equal(t, RGBA{}, ResolveBinCurve(emath.Linear, b, 1, 0, 1, 0))
	}
}

func TestResolveLinear(t *testing.T) {
	// a = 1 * (log10(100) + 0) = 2
	p := ResolveBinCurve(emath.Linear, hist.Bin{R: 10, G: 20, B: 30, N: 100}, 1, 0, 1, 0)
	require.InDelta(t, 2.0, p.A, 1e-12)
	require.InDelta(t, 0.2, p.R, 1e-12)
	require.InDelta(t, 0.4, p.G, 1e-12)
	require.InDelta(t, 0.6, p.B, 1e-12)
}

func TestResolveDegenerateIsTransparent(t *testing.T) {
	b := hist.Bin{R: 1, G: 2, B: 3, N: 10}

	// Negative alpha with a zero threshold.
	require.Equal(t, RGBA{}, ResolveBinCurve(emath.Linear, b, 1, -3, 1, 0))
	// Fractional power of a negative alpha.
	require.Equal(t, RGBA{}, ResolveBinCurve(emath.Linear, b, 1, -3, 2, 0.5))
	// Bad gamma.
	require.Equal(t, RGBA{}, ResolveBinCurve(emath.Linear, hist.Bin{N: 100}, 1, 0, 0, 0))
	// Zero alpha.
	require.Equal(t, RGBA{}, ResolveBinCurve(emath.Linear, hist.Bin{R: 5, N: 1}, 1, 0, 1, 0))
}

func TestResolveNeverPanicsOrLeaksNonFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 5000; i++ {
		b := hist.Bin{R: rng.Uint64() >> 20, G: rng.Uint64() >> 20, B: rng.Uint64() >> 20, N: rng.Uint64() >> uint(rng.Intn(64))}
		for _, c := range []emath.Curve{emath.Filmic, emath.Linear} {
			p := ResolveBinCurve(c, b, 65535*(rng.Float64()*4+1e-3), rng.Float64()*20-15, rng.Float64()*4+0.05, rng.Float64())
			for _, v := range []float64{p.R, p.G, p.B, p.A} {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "bin %v gave %v", b, p)
			}
			if p != (RGBA{}) {
				require.Greater(t, p.A, 0.0)
			}
		}
	}
}

func TestResolveEndToEnd(t *testing.T) {
	dump := make([]byte, 16+4*8)
	for i, v := range []uint64{1, 1, 10, 20, 30, 1000} {
		binary.LittleEndian.PutUint64(dump[8*i:], v)
	}
	h, err := hist.Read(bytes.NewReader(dump))
	require.NoError(t, err)

	v, err := NewView(h, DefaultMetadata(), DefaultToneMap())
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Area())

	lqa, err := emath.LogQualityArea(1, 1, 1, 25000)
	require.NoError(t, err)
	require.Equal(t, lqa, v.LQA())

	a := 65535 * (math.Log10(1000) + lqa)
	p, err := v.Pixel(0, 0)
	require.NoError(t, err)

	require.False(t, math.IsNaN(p.A) || math.IsInf(p.A, 0))
	require.InDelta(t, emath.Filmic(a), p.A, 1e-12)
	require.InDelta(t, 10*a/1000, p.R, 1e-9)
	require.InDelta(t, 20*a/1000, p.G, 1e-9)
	require.InDelta(t, 30*a/1000, p.B, 1e-9)

	// Without the filmic curve alpha passes through gamma 1 untouched,
	// and here it is negative, so the pixel vanishes.
	lin, err := NewViewCurve(h, DefaultMetadata(), DefaultToneMap(), emath.Linear)
	require.NoError(t, err)
	p, err = lin.Pixel(0, 0)
	require.NoError(t, err)
	require.Equal(t, RGBA{}, p)
}
