package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var pixelCmd = &cobra.Command{
	Use:   "pixel <dump> <x> <y>",
	Short: "Show the raw bin and resolved color at a histogram position",
	Args:  cobra.ExactArgs(3),
	RunE:  runPixel,
}

func init() {
	rootCmd.AddCommand(pixelCmd)
}

func runPixel(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("x '%s': %v", args[1], err)
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("y '%s': %v", args[2], err)
	}

	v, c, err := loadView(cmd, args[0])
	if err != nil {
		return err
	}

	b, err := v.Histogram().Bin(x, y)
	if err != nil {
		return err
	}
	p, err := v.Pixel(x, y)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "----- Bin @(%d,%d) -----\n", x, y)
	fmt.Fprintf(out, "Raw                : %s\n", b)
	fmt.Fprintf(out, "Resolved RGBA      : %s\n", p)
	r, g, bl, a := p.RGBA64().RGBA()
	fmt.Fprintf(out, "Output(RGBA64)     : [      0x%04X,       0x%04X,       0x%04X,       0x%04X]\n", r, g, bl, a)

	if c.OSA > 1 {
		d := v.Downsample()
		px, py := x/c.OSA, y/c.OSA
		if reg, err := d.Region(px, py); err == nil {
			fmt.Fprintf(out, "Output pixel (%d,%d): %s -> %s\n", px, py, reg.Sum(), d.PixelAt(px, py))
		}
	}
	return nil
}
