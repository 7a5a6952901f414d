// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// Vec3 is a YAML-friendly three component vector.
type Vec3 [3]float32

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // sdl, glfw or imgui
}

// TerrainConfig holds heightmap and texture settings.
type TerrainConfig struct {
	Heightmap       string  `yaml:"heightmap"`
	Texture         string  `yaml:"texture"`
	HeightScale     float32 `yaml:"height_scale"`
	TexRepeat       float32 `yaml:"tex_repeat"`
	NormalStrength  float32 `yaml:"normal_strength"`
	TextureFallback bool    `yaml:"texture_fallback"`
}

// CameraConfig holds the fly camera and ground-following settings.
type CameraConfig struct {
	Position    Vec3    `yaml:"position"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`

	EyeOffset  float32 `yaml:"eye_offset"`
	FollowMode string  `yaml:"follow_mode"` // lerp or spring
	FollowRate float32 `yaml:"follow_rate"`

	// Spring mode only.
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// LightConfig holds the point light and its marker sphere.
type LightConfig struct {
	// Position is derived from the terrain size when empty.
	Position      []float32 `yaml:"position,omitempty"`
	Color         Vec3      `yaml:"color"`
	SphereRadius  float32   `yaml:"sphere_radius"`
	SphereSectors int       `yaml:"sphere_sectors"`
	SphereStacks  int       `yaml:"sphere_stacks"`
	SphereScale   float32   `yaml:"sphere_scale"`
}

// RenderConfig holds frame settings.
type RenderConfig struct {
	ClearColor    Vec3   `yaml:"clear_color"`
	Wireframe     bool   `yaml:"wireframe"`
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Terrain",
			Width:   1000,
			Height:  600,
			VSync:   true,
			Backend: "sdl",
		},
		Terrain: TerrainConfig{
			Heightmap:      "heightmap257.png",
			Texture:        "grass.png",
			HeightScale:    20,
			TexRepeat:      10,
			NormalStrength: 2,
		},
		Camera: CameraConfig{
			Position:        Vec3{0, 50, 100},
			Yaw:             -90,
			Pitch:           0,
			Speed:           20,
			Sensitivity:     0.1,
			FOV:             45,
			Near:            0.1,
			Far:             1000,
			EyeOffset:       2,
			FollowMode:      "lerp",
			FollowRate:      10,
			SpringFrequency: 6,
			SpringDamping:   1,
		},
		Light: LightConfig{
			Color:         Vec3{1, 1, 1},
			SphereRadius:  5,
			SphereSectors: 32,
			SphereStacks:  16,
			SphereScale:   1,
		},
		Render: RenderConfig{
			ClearColor:    Vec3{0.5, 0.7, 1.0},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	switch c.Window.Backend {
	case "sdl", "glfw", "imgui":
	default:
		errs = append(errs, fmt.Errorf("window: unknown backend %q", c.Window.Backend))
	}

	check(c.Terrain.Heightmap != "", "terrain: heightmap path is empty")
	check(c.Terrain.Texture != "", "terrain: texture path is empty")
	check(c.Terrain.HeightScale > 0, "terrain: height_scale must be positive")
	check(c.Terrain.TexRepeat > 0, "terrain: tex_repeat must be positive")
	check(c.Terrain.NormalStrength > 0, "terrain: normal_strength must be positive")

	check(c.Camera.Speed > 0, "camera: speed must be positive")
	check(c.Camera.Sensitivity > 0, "camera: sensitivity must be positive")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera: fov must be in (0, 180)")
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera: need 0 < near < far, got %g/%g", c.Camera.Near, c.Camera.Far)
	switch c.Camera.FollowMode {
	case "lerp":
		check(c.Camera.FollowRate > 0, "camera: follow_rate must be positive")
	case "spring":
		check(c.Camera.SpringFrequency > 0, "camera: spring_frequency must be positive")
		check(c.Camera.SpringDamping > 0, "camera: spring_damping must be positive")
	default:
		errs = append(errs, fmt.Errorf("camera: unknown follow_mode %q", c.Camera.FollowMode))
	}

	check(len(c.Light.Position) == 0 || len(c.Light.Position) == 3,
		"light: position needs 3 components, got %d", len(c.Light.Position))
	check(c.Light.SphereRadius > 0, "light: sphere_radius must be positive")
	check(c.Light.SphereSectors >= 3, "light: sphere_sectors must be at least 3")
	check(c.Light.SphereStacks >= 2, "light: sphere_stacks must be at least 2")
	check(c.Light.SphereScale > 0, "light: sphere_scale must be positive")

	return errors.Join(errs...)
}
