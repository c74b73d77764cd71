package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/abworrall/xirho-hdr/pkg/flame"
	"github.com/abworrall/xirho-hdr/pkg/hist"
)

var fDensityFilename string

var densityCmd = &cobra.Command{
	Use:   "density <dump>",
	Short: "Write a grayscale image of log10(hit count), for debugging",
	Args:  cobra.ExactArgs(1),
	RunE:  runDensity,
}

func init() {
	densityCmd.Flags().StringVarP(&fDensityFilename, "output", "o", "density.png", "output PNG file")
	rootCmd.AddCommand(densityCmd)
}

func runDensity(cmd *cobra.Command, args []string) error {
	h, err := hist.ReadFile(args[0])
	if err != nil {
		return err
	}

	fg := flame.DensityGrid(h)
	lo, hi := fg.FindMinMaxAtPercentile(0.01, 0.99)
	log.Printf("Density grid %s\n", fg.Stats())

	title := fmt.Sprintf("%dx%d log10(N), p1 %.2f p99 %.2f", h.Cols(), h.Rows(), lo, hi)
	if err := fg.ToImg(title, fDensityFilename); err != nil {
		return err
	}
	log.Printf("Density image written '%s'\n", fDensityFilename)
	return nil
}
