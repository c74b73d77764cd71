package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/abworrall/xirho-hdr/pkg/flame"
)

var fOutputFilename string

var renderCmd = &cobra.Command{
	Use:   "render <dump>",
	Short: "Render a histogram dump to PNG, 16 bit TIFF or Radiance HDR",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&fOutputFilename, "output", "o", "out.png", "output image file; format from extension")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	v, c, err := loadView(cmd, args[0])
	if err != nil {
		return err
	}

	// With osa 1 this is pixel for pixel the same as the view
	src := v.Downsample()

	if flame.IsHDRFilename(fOutputFilename) {
		if err := flame.WriteByExtension(src, fOutputFilename); err != nil {
			return err
		}
	} else {
		log.Printf("Rendering %s with %d workers\n", src.Bounds(), c.Workers)
		img, err := flame.Render(cmd.Context(), src, c.RenderOptions())
		if err != nil {
			return err
		}
		if err := flame.WriteByExtension(img, fOutputFilename); err != nil {
			return err
		}
	}

	log.Printf("Output file written '%s'\n", fOutputFilename)
	return nil
}
