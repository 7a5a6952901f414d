// Package framebuffer provides the offscreen target the terrain is drawn
// into when an ImGui host owns the default framebuffer.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an RGBA8 colour texture with a 24-bit depth renderbuffer.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int
	height       int
}

// New creates a framebuffer of the given size. Sizes below one pixel are
// raised to one so a minimized window still has a valid target.
func New(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{}
	fb.width, fb.height = clampSize(width, height)

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	return fb, nil
}

func clampSize(width, height int) (int, int) {
	return max(width, 1), max(height, 1)
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenRenderbuffers(1, &fb.depthRBO)
	fb.allocate()

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// allocate (re)allocates attachment storage at the current size.
func (fb *Framebuffer) allocate() {
	w, h := int32(fb.width), int32(fb.height)

	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Bind makes this framebuffer the render and read target and sets the
// viewport to cover it.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, int32(fb.width), int32(fb.height))
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ColorTexture returns the colour attachment texture ID.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTexture
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// Resize reallocates both attachments when the size changed.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = clampSize(width, height)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width, fb.height = width, height
	fb.allocate()
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
