// Package shaders embeds the GLSL sources used by the scene renderers.
package shaders

import _ "embed"

// Terrain program. Uniforms: model, view, projection, lightPos,
// lightColor, viewPos, terrainTexture.
var (
	//go:embed terrain.vert
	TerrainVertexShader string

	//go:embed terrain.frag
	TerrainFragmentShader string
)

// Light marker program. Uniforms: model, view, projection, lightColor.
var (
	//go:embed light.vert
	LightVertexShader string

	//go:embed light.frag
	LightFragmentShader string
)
