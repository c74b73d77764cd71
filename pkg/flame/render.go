package flame

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderOptions control Render.
type RenderOptions struct {
	Workers int  // rows rendered concurrently; <= 0 means one per CPU
	SRGB    bool // apply the sRGB transfer function to color
}

// Render resolves every pixel of src into a 16 bit image. Rows are shared out
// between workers; ctx is checked before each row.
func Render(ctx context.Context, src Source, opts RenderOptions) (*image.RGBA64, error) {
	b := src.Bounds()
	out := image.NewRGBA64(b)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := b.Min.X; x < b.Max.X; x++ {
				p := src.PixelAt(x, y)
				if opts.SRGB {
					p = p.SRGB()
				}
				out.SetRGBA64(x, y, p.RGBA64())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render %s: %w", b, err)
	}
	return out, nil
}
