package emath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	require.InDelta(t, math.Log10(65535), CLScale, 1e-12)
	require.InDelta(t, math.Log10(200), LWP, 1e-12)
}

func TestArea(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		projArea float64
		want     float64
	}{
		{"square", 10, 10, 1, 1},
		{"wide", 20, 10, 1, 0.5},
		{"tall", 10, 20, 1, 0.5},
		{"scaled camera", 10, 10, 4, 0.25},
		{"zero width", 0, 10, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Area(tt.w, tt.h, tt.projArea)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-15)
		})
	}
}

func TestAreaSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		w, h := 1+rng.Intn(5000), 1+rng.Intn(5000)
		p := rng.Float64()*10 + 1e-6
		a1, err := Area(w, h, p)
		require.NoError(t, err)
		a2, err := Area(h, w, p)
		require.NoError(t, err)
		require.Equal(t, a1, a2, "%dx%d p=%g", w, h, p)
	}
}

func TestAreaDomain(t *testing.T) {
	_, err := Area(10, 0, 1)
	require.ErrorIs(t, err, ErrDomain)
	_, err = Area(10, 10, 0)
	require.ErrorIs(t, err, ErrDomain)
	_, err = Area(10, 10, -2)
	require.ErrorIs(t, err, ErrDomain)
	_, err = Area(10, 10, math.NaN())
	require.ErrorIs(t, err, ErrDomain)
}

func TestLogQualityArea(t *testing.T) {
	lqa, err := LogQualityArea(1, 1, 1, 25000)
	require.NoError(t, err)
	require.InDelta(t, LWP-CLScale-math.Log10(25000), lqa, 1e-12)

	lqa, err = LogQualityArea(1e6, 2, 0.5, 1e9)
	require.NoError(t, err)
	want := LWP - CLScale + math.Log10(2) - math.Log10(0.5) + 6 - 9
	require.InDelta(t, want, lqa, 1e-12)
}

func TestLogQualityAreaDomain(t *testing.T) {
	good := [4]float64{100, 1, 1, 25000}
	for i := range good {
		for _, bad := range []float64{0, -1, math.NaN()} {
			args := good
			args[i] = bad
			_, err := LogQualityArea(args[0], args[1], args[2], args[3])
			require.ErrorIs(t, err, ErrDomain, "args %v", args)
		}
	}

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		v, err := LogQualityArea(1+rng.Float64()*1e8, rng.Float64()+1e-9, rng.Float64()+1e-9, 1+rng.Float64()*1e12)
		require.NoError(t, err)
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestProjArea(t *testing.T) {
	require.Equal(t, 1.0, Identity().ProjArea())
	require.InDelta(t, 6.0, Identity().Scale(2, 3).ProjArea(), 1e-12)
	require.InDelta(t, 6.0, Identity().Scale(2, -3).ProjArea(), 1e-12)
	require.InDelta(t, 6.0, Identity().Scale(2, 3).Rotate(33).Translate(5, -1).ProjArea(), 1e-12)
}
