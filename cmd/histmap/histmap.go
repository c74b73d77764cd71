package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/abworrall/xirho-hdr/pkg/emath"
	"github.com/abworrall/xirho-hdr/pkg/flame"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

var (
	fConfigFilename string
	fVerbosity      int

	// Overrides for the config file
	fBrightness float64
	fGamma      float64
	fGammaMin   float64
	fCurve      string
	fOSA        int
	fIters      int64
	fProjArea   float64
	fWorkers    int
	fSRGB       bool
)

var rootCmd = &cobra.Command{
	Use:   "histmap",
	Short: "Tone map xirho flame histogram dumps",
	Long: `histmap turns raw R,G,B,N histogram dumps from a flame renderer into
images, using log-density alpha, an optional ACES filmic curve and gamma.

Settings come from an optional YAML --config file, then from flags.`,
	SilenceUsage: true,
}

func init() {
	d := flame.NewConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&fConfigFilename, "config", "", "YAML config file")
	pf.IntVarP(&fVerbosity, "verbosity", "v", 0, "how verbose to get")

	pf.Float64Var(&fBrightness, "brightness", d.Brightness, "alpha multiplier")
	pf.Float64Var(&fGamma, "gamma", d.Gamma, "gamma correction factor")
	pf.Float64Var(&fGammaMin, "gammamin", d.GammaMin, "alpha threshold (0.0->1.0) below which gamma is blended")
	pf.StringVar(&fCurve, "curve", d.Curve, fmt.Sprintf("alpha curve applied before gamma: %v", emath.ListCurves()))
	pf.IntVar(&fOSA, "osa", d.OSA, "oversampling factor the histogram was rendered with")
	pf.Int64Var(&fIters, "iters", d.Iters, "total iterations of the render")
	pf.Float64Var(&fProjArea, "projarea", d.ProjArea, "projective area of the camera")
	pf.IntVar(&fWorkers, "workers", d.Workers, "rows to render concurrently")
	pf.BoolVar(&fSRGB, "srgb", d.SRGB, "apply the sRGB transfer function to output color")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the config file, if any, and applies any flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (flame.Config, error) {
	c := flame.NewConfig()
	if fConfigFilename != "" {
		var err error
		if c, err = flame.LoadConfig(fConfigFilename); err != nil {
			return c, err
		}
		log.Printf("Loaded base configuration from %s\n", fConfigFilename)
	}

	flags := cmd.Flags()
	if flags.Changed("verbosity") {
		c.Verbosity = fVerbosity
	}
	if flags.Changed("brightness") {
		c.Brightness = fBrightness
	}
	if flags.Changed("gamma") {
		c.Gamma = fGamma
	}
	if flags.Changed("gammamin") {
		c.GammaMin = fGammaMin
	}
	if flags.Changed("curve") {
		c.Curve = fCurve
	}
	if flags.Changed("osa") {
		c.OSA = fOSA
	}
	if flags.Changed("iters") {
		c.Iters = fIters
	}
	if flags.Changed("projarea") {
		c.ProjArea = fProjArea
		c.Camera = nil
		c.Zoom, c.Rotate, c.Center = 0, 0, nil
	}
	if flags.Changed("workers") {
		c.Workers = fWorkers
	}
	if flags.Changed("srgb") {
		c.SRGB = fSRGB
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if c.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", c.AsYaml())
	}
	return c, nil
}

// loadView reads a histogram dump and wraps it with the configured tone
// mapping.
func loadView(cmd *cobra.Command, filename string) (*flame.View, flame.Config, error) {
	c, err := loadConfig(cmd)
	if err != nil {
		return nil, c, err
	}

	h, err := hist.ReadFile(filename)
	if err != nil {
		return nil, c, err
	}
	log.Printf("Loaded %s from %s\n", h, filename)

	v, err := c.NewView(h)
	if err != nil {
		return nil, c, fmt.Errorf("view %s: %w", filename, err)
	}
	if c.Verbosity > 0 {
		log.Printf("%s\n", v)
	}
	return v, c, nil
}
