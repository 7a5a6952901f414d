package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/lighting"
	"github.com/Faultbox/terrainview/internal/engine/scene/shaders"
	"github.com/Faultbox/terrainview/internal/engine/shader"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
)

// TerrainRenderer draws a textured, lit terrain mesh.
type TerrainRenderer struct {
	program *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	texture    uint32

	model mgl32.Mat4
}

// NewTerrainRenderer compiles the terrain program and uploads mesh and
// texture to the GPU.
func NewTerrainRenderer(mesh *terrain.Mesh, tex *texture.PixelData) (*TerrainRenderer, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("terrain renderer: empty mesh")
	}
	if tex == nil || len(tex.Pix) == 0 {
		return nil, fmt.Errorf("terrain renderer: empty texture")
	}

	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tr := &TerrainRenderer{
		program: program,
		model:   mgl32.Ident4(),
	}
	tr.uploadMesh(mesh.Vertices, mesh.Indices)
	tr.texture = uploadTexture(tex)
	return tr, nil
}

func (tr *TerrainRenderer) uploadMesh(vertices []terrain.Vertex, indices []uint32) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	tr.indexCount = int32(len(indices))
}

// uploadTexture creates a repeating, trilinear-filtered 2D texture.
// Opaque images upload as RGB, others as RGBA.
func uploadTexture(tex *texture.PixelData) uint32 {
	format := uint32(gl.RGB)
	internal := int32(gl.RGB8)
	if tex.Channels == 4 {
		format = gl.RGBA
		internal = gl.RGBA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal,
		int32(tex.Width), int32(tex.Height),
		0, format, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// Render draws the terrain with the given camera and light.
func (tr *TerrainRenderer) Render(view, projection mgl32.Mat4, viewPos mgl32.Vec3, light *lighting.PointLight) {
	tr.program.Use()

	tr.program.SetMat4("model", tr.model)
	tr.program.SetMat4("view", view)
	tr.program.SetMat4("projection", projection)
	tr.program.SetVec3("lightPos", light.Position)
	tr.program.SetVec3("lightColor", light.Color)
	tr.program.SetVec3("viewPos", viewPos)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	tr.program.SetInt("terrainTexture", 0)

	gl.BindVertexArray(tr.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (tr *TerrainRenderer) Destroy() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
	}
	if tr.texture != 0 {
		gl.DeleteTextures(1, &tr.texture)
	}
	if tr.program != nil {
		tr.program.Delete()
	}
}
