// Package scene draws the terrain and its light marker.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/lighting"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
)

// Config describes what the scene draws.
type Config struct {
	Mesh    *terrain.Mesh
	Texture *texture.PixelData
	Light   *lighting.PointLight

	SphereRadius  float32
	SphereSectors int
	SphereStacks  int
	SphereScale   float32
}

// Scene owns the GPU side of everything that gets drawn each frame.
type Scene struct {
	Light *lighting.PointLight

	terrainRenderer *TerrainRenderer
	lightRenderer   *LightRenderer
}

// New uploads the scene. Must be called with a current GL context.
func New(cfg Config) (*Scene, error) {
	if cfg.Light == nil {
		return nil, fmt.Errorf("scene: no light")
	}

	s := &Scene{Light: cfg.Light}

	var err error
	s.terrainRenderer, err = NewTerrainRenderer(cfg.Mesh, cfg.Texture)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	sphere := lighting.GenerateSphere(cfg.SphereRadius, cfg.SphereSectors, cfg.SphereStacks)
	s.lightRenderer, err = NewLightRenderer(sphere, cfg.SphereScale)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating light renderer: %w", err)
	}

	return s, nil
}

// Render draws the terrain then the light marker.
func (s *Scene) Render(view, projection mgl32.Mat4, viewPos mgl32.Vec3) {
	s.terrainRenderer.Render(view, projection, viewPos, s.Light)
	s.lightRenderer.Render(view, projection, s.Light)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.lightRenderer != nil {
		s.lightRenderer.Destroy()
	}
}
