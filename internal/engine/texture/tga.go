package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const tgaHeaderSize = 18

// DecodeTGA decodes a TGA image.
// Supports true-color (24/32 bpp) and 8-bit grayscale, raw or RLE.
// Grayscale files decode to *image.Gray so heightmaps keep a single channel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	rle := imageType == TGATypeRLE || imageType == TGATypeGrayRLE
	switch {
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("tga: unsupported type %d", imageType)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: data truncated")
	}

	d := &tgaDecoder{
		src:         data[offset:],
		width:       width,
		height:      height,
		bytesPP:     bpp / 8,
		topToBottom: topToBottom,
	}
	if gray {
		d.gray = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		d.rgba = image.NewRGBA(image.Rect(0, 0, width, height))
	}

	var err error
	if rle {
		err = d.readRLE()
	} else {
		err = d.readRaw()
	}
	if err != nil {
		return nil, err
	}

	if gray {
		return d.gray, nil
	}
	return d.rgba, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	width       int
	height      int
	bytesPP     int
	topToBottom bool

	rgba *image.RGBA
	gray *image.Gray
}

// pixel reads one pixel from the source stream. TGA stores BGR(A).
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.bytesPP > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.bytesPP]
	d.pos += d.bytesPP

	if d.bytesPP == 1 {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, true
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPP == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores the n-th pixel in stream order, honouring the origin flag.
func (d *tgaDecoder) put(n int, c color.RGBA) {
	x := n % d.width
	y := n / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	if d.gray != nil {
		d.gray.SetGray(x, y, color.Gray{Y: c.R})
		return
	}
	d.rgba.SetRGBA(x, y, c)
}

func (d *tgaDecoder) readRaw() error {
	total := d.width * d.height
	if len(d.src) < total*d.bytesPP {
		return fmt.Errorf("tga: pixel data truncated")
	}
	for n := 0; n < total; n++ {
		c, _ := d.pixel()
		d.put(n, c)
	}
	return nil
}

func (d *tgaDecoder) readRLE() error {
	total := d.width * d.height
	n := 0
	for n < total {
		if d.pos >= len(d.src) {
			return fmt.Errorf("tga: rle data truncated at pixel %d", n)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("tga: rle data truncated at pixel %d", n)
			}
			for i := 0; i < count && n < total; i++ {
				d.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("tga: rle data truncated at pixel %d", n)
			}
			d.put(n, c)
			n++
		}
	}
	return nil
}
