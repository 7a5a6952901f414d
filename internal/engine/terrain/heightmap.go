package terrain

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/terrainview/internal/engine/texture"
)

// NewHeightGrid validates samples and wraps them in a grid.
func NewHeightGrid(width, height int, samples []float32) (*HeightGrid, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("terrain: %d samples for %dx%d grid", len(samples), width, height)
	}
	return &HeightGrid{Width: width, Height: height, Samples: samples}, nil
}

// At returns the sample at (x, z) with coordinates clamped to the grid edge.
func (g *HeightGrid) At(x, z int) float32 {
	x = clampi(x, 0, g.Width-1)
	z = clampi(z, 0, g.Height-1)
	return g.Samples[z*g.Width+x]
}

// LoadHeightmap decodes an image file into a height grid.
// Decode failures and images smaller than 2x2 return *texture.LoadError.
func LoadHeightmap(path string) (*HeightGrid, error) {
	img, err := texture.LoadFile(path)
	if err != nil {
		return nil, err
	}
	grid, err := GridFromImage(img)
	if err != nil {
		return nil, &texture.LoadError{Path: path, Err: err}
	}
	return grid, nil
}

// GridFromImage reduces an image to one luminance channel and normalizes
// it to [0,1]. Image dimensions become grid dimensions. 16-bit grayscale
// sources keep their full precision. Alpha is ignored.
func GridFromImage(img image.Image) (*HeightGrid, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	samples := make([]float32, w*h)

	switch src := img.(type) {
	case *image.Gray:
		for z := 0; z < h; z++ {
			for x := 0; x < w; x++ {
				samples[z*w+x] = float32(src.GrayAt(b.Min.X+x, b.Min.Y+z).Y) / 255.0
			}
		}
	case *image.Gray16:
		for z := 0; z < h; z++ {
			for x := 0; x < w; x++ {
				samples[z*w+x] = float32(src.Gray16At(b.Min.X+x, b.Min.Y+z).Y) / 65535.0
			}
		}
	case *image.NRGBA:
		for z := 0; z < h; z++ {
			for x := 0; x < w; x++ {
				c := src.NRGBAAt(b.Min.X+x, b.Min.Y+z)
				samples[z*w+x] = float32(luma16(color.NRGBA64{
					R: uint16(c.R) * 0x101,
					G: uint16(c.G) * 0x101,
					B: uint16(c.B) * 0x101,
				})) / 65535.0
			}
		}
	default:
		for z := 0; z < h; z++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+z)).(color.NRGBA64)
				samples[z*w+x] = float32(luma16(c)) / 65535.0
			}
		}
	}

	return NewHeightGrid(w, h, samples)
}

// luma16 is the Rec. 601 luminance of the straight colour channels.
// Alpha does not darken the height.
func luma16(c color.NRGBA64) uint16 {
	return uint16((19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16)
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
