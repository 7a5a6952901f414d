// Package debug provides screenshot capture for the viewer.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05"

// ScreenshotCapture writes framebuffer contents to PNG files named
// <prefix>_<timestamp>.png inside outputDir.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves tightly packed RGBA pixels read from OpenGL.
// Rows arrive bottom-up and are flipped so the PNG is upright.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return sc.CaptureFromImage(FlipRGBA(pixels, width, height))
}

// CaptureFromImage saves an already upright image.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename, err := sc.nextFilename()
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

// nextFilename picks a name that does not exist yet. Several captures in
// the same second get a numeric suffix.
func (sc *ScreenshotCapture) nextFilename() (string, error) {
	base := fmt.Sprintf("%s_%s", sc.prefix, sc.now().Format(timestampLayout))
	for i := 0; i < 1000; i++ {
		name := base + ".png"
		if i > 0 {
			name = fmt.Sprintf("%s_%d.png", base, i)
		}
		path := filepath.Join(sc.outputDir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("too many screenshots named %s", base)
}

// FlipRGBA copies bottom-up RGBA rows into an upright image.
func FlipRGBA(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}
