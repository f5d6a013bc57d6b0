package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

var logger = log.New("loaders")

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image as a linear-RGB texture.
// 8-bit channels are treated as sRGB-encoded.
func LoadImage(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	texture, err := DecodeImage(file, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return texture, nil
}

// DecodeImage decodes an image from r. With srgb set, channels are expanded to linear RGB;
// otherwise they are used as-is in [0, 1].
func DecodeImage(r io.Reader, srgb bool) (*material.ImageTexture, error) {
	// Format is auto-detected from the header
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	convert := func(c uint32) float64 {
		// RGBA returns uint32 in [0, 65535]
		u := float64(c) / 65535.0
		if srgb {
			return core.SRGBToLinear(u)
		}
		return u
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(convert(r), convert(g), convert(b))
		}
	}

	logger.Debugf("decoded %s image %dx%d", format, width, height)
	return material.NewImageTexture(width, height, pixels), nil
}
