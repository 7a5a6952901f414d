// Package texture provides image decoding and texture preparation utilities.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadError reports an image that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads and decodes an image file.
// Any failure is returned as *LoadError.
func LoadFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return img, nil
}

// Decode decodes image bytes. TGA has no magic number, so it is
// selected by the file extension in name.
func Decode(data []byte, name string) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with origin (0,0).
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			rgba.SetRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return rgba
}

// HasAlpha reports whether the image carries an alpha channel that is not
// fully opaque. Opaque images upload as RGB.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// PixelData holds tightly packed pixels ready for GPU upload.
type PixelData struct {
	Width    int
	Height   int
	Channels int // 3 (RGB) or 4 (RGBA)
	Pix      []byte
}

// Pack converts an image to RGB or RGBA bytes depending on its alpha channel.
func Pack(img image.Image) *PixelData {
	rgba := ImageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	if HasAlpha(img) {
		pix := make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
		}
		return &PixelData{Width: w, Height: h, Channels: 4, Pix: pix}
	}

	pix := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			pix = append(pix, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return &PixelData{Width: w, Height: h, Channels: 3, Pix: pix}
}

// Checkerboard builds a two-tone placeholder texture of size x size pixels
// with square cells of cell pixels.
func Checkerboard(size, cell int, a, b color.RGBA) *image.RGBA {
	if cell <= 0 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}
