package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/lighting"
	"github.com/Faultbox/terrainview/internal/engine/scene/shaders"
	"github.com/Faultbox/terrainview/internal/engine/shader"
)

// LightRenderer draws an unlit sphere at the light position.
type LightRenderer struct {
	program *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	scale float32
}

// NewLightRenderer uploads sphere geometry for the light marker.
func NewLightRenderer(sphere *lighting.SphereMesh, scale float32) (*LightRenderer, error) {
	if sphere == nil || len(sphere.Vertices) == 0 || len(sphere.Indices) == 0 {
		return nil, fmt.Errorf("light renderer: empty sphere")
	}

	program, err := shader.NewProgram(shaders.LightVertexShader, shaders.LightFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("light shader: %w", err)
	}

	lr := &LightRenderer{program: program, scale: scale}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)

	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	stride := int(unsafe.Sizeof(mgl32.Vec3{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(sphere.Vertices)*stride, unsafe.Pointer(&sphere.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(stride), 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &lr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, lr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sphere.Indices)*4, unsafe.Pointer(&sphere.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	lr.indexCount = int32(len(sphere.Indices))
	return lr, nil
}

// Render draws the marker for light.
func (lr *LightRenderer) Render(view, projection mgl32.Mat4, light *lighting.PointLight) {
	lr.program.Use()
	lr.program.SetMat4("model", light.ModelMatrix(lr.scale))
	lr.program.SetMat4("view", view)
	lr.program.SetMat4("projection", projection)
	lr.program.SetVec3("lightColor", light.Color)

	gl.BindVertexArray(lr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, lr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (lr *LightRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
	}
	if lr.ebo != 0 {
		gl.DeleteBuffers(1, &lr.ebo)
	}
	if lr.program != nil {
		lr.program.Delete()
	}
}
