package flame

// A few helpers for writing rendered histograms out

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/tiff"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteTIFF keeps all 16 bits per channel.
func WriteTIFF(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
}

// WriteHDR outputs a Radiance RGBE image of the unclamped color. You can
// load this into photoshop or other HDR tools.
func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}

// OutputFormats lists the extensions WriteByExtension understands.
var OutputFormats = []string{".png", ".tif", ".tiff", ".hdr"}

// IsHDRFilename is true when filename wants the unclamped RGBE output.
func IsHDRFilename(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".hdr"
}

// WriteByExtension picks an encoder from the filename. HDR output needs
// an hdr.Image rather than a rendered LDR image, so it is handled by the
// caller via WriteHDR.
func WriteByExtension(img image.Image, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return WritePNG(img, filename)
	case ".tif", ".tiff":
		return WriteTIFF(img, filename)
	case ".hdr":
		if h, ok := img.(hdr.Image); ok {
			return WriteHDR(h, filename)
		}
		return fmt.Errorf("'%s': image %T has no HDR data", filename, img)
	}
	return fmt.Errorf("'%s': unknown output format, wanted one of %v", filename, OutputFormats)
}
