package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/xirho-hdr/pkg/hist"
)

func writeDump(t *testing.T, dir string) string {
	h, err := hist.FromBins(8, 6, func(x, y int) hist.Bin {
		n := uint64(x * y * 50)
		return hist.Bin{R: n * 40000, G: n * 30000, B: n * 20000, N: n}
	})
	require.NoError(t, err)

	fn := filepath.Join(dir, "flame.hist")
	f, err := os.Create(fn)
	require.NoError(t, err)
	defer f.Close()
	_, err = h.WriteTo(f)
	require.NoError(t, err)
	return fn
}

// resetFlags puts every flag back to its default, so one Execute can't leak
// settings into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

func run(t *testing.T, args ...string) string {
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "%v", args)
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir)

	out := run(t, "stats", "--iters", "1000000", dump)
	require.Contains(t, out, "8x6 bins")

	out = run(t, "pixel", "--osa", "2", dump, "7", "5")
	require.Contains(t, out, "N=1750")
	require.Contains(t, out, "Output pixel (3,2)")

	for _, name := range []string{"out.png", "out.tif", "out.hdr"} {
		fn := filepath.Join(dir, name)
		run(t, "render", "--osa", "2", "--gamma", "2.2", "--srgb", "-o", fn, dump)
		info, err := os.Stat(fn)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}

	fn := filepath.Join(dir, "density.png")
	run(t, "density", "-o", fn, dump)
	_, err := os.Stat(fn)
	require.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir)
	cfg := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("gamma: -1\n"), 0o644))

	resetFlags(t, rootCmd)
	rootCmd.SetArgs([]string{"stats", "--config", cfg, dump})
	rootCmd.SetErr(&bytes.Buffer{})
	require.Error(t, rootCmd.Execute())
	resetFlags(t, rootCmd)
}

func TestFlagsDoNotCarryOver(t *testing.T) {
	dump := writeDump(t, t.TempDir())

	before := run(t, "stats", dump)
	tuned := run(t, "stats", "--iters", "1000000", "--brightness", "3", dump)
	after := run(t, "stats", dump)

	require.NotEqual(t, before, tuned)
	require.Equal(t, before, after)
}
