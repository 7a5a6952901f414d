package viewer

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/terrain"
)

// FollowMode selects how the eye height chases the terrain.
type FollowMode string

const (
	// FollowLerp moves a fixed fraction of the remaining distance per
	// second of frame time.
	FollowLerp FollowMode = "lerp"
	// FollowSpring uses a damped spring, which eases in and out.
	FollowSpring FollowMode = "spring"
)

// GroundConfig tunes ground following.
type GroundConfig struct {
	EyeOffset float32
	Mode      FollowMode
	Rate      float32 // lerp mode

	SpringFrequency float64 // spring mode, angular frequency
	SpringDamping   float64 // spring mode, 1 is critically damped
}

// GroundFollower keeps a position inside the terrain and eases its
// height toward the surface plus an eye offset.
type GroundFollower struct {
	sampler  *terrain.Sampler
	cfg      GroundConfig
	velocity float64 // spring mode only
}

// NewGroundFollower creates a follower over sampler.
func NewGroundFollower(sampler *terrain.Sampler, cfg GroundConfig) (*GroundFollower, error) {
	switch cfg.Mode {
	case FollowLerp, FollowSpring:
	case "":
		cfg.Mode = FollowLerp
	default:
		return nil, fmt.Errorf("unknown follow mode %q", cfg.Mode)
	}
	return &GroundFollower{sampler: sampler, cfg: cfg}, nil
}

// SurfaceAt returns the terrain height at (x, z).
func (g *GroundFollower) SurfaceAt(x, z float32) float32 {
	return g.sampler.HeightAt(x, z)
}

// Target returns the eye height wanted at (x, z).
func (g *GroundFollower) Target(x, z float32) float32 {
	return g.SurfaceAt(x, z) + g.cfg.EyeOffset
}

// Update clamps pos into the terrain on X/Z and moves its Y toward the
// target height. X/Z snap immediately; only Y is smoothed.
func (g *GroundFollower) Update(pos *mgl32.Vec3, dt float32) {
	pos[0], pos[2] = g.sampler.Clamp(pos[0], pos[2])
	target := g.Target(pos[0], pos[2])

	if dt <= 0 {
		return
	}

	switch g.cfg.Mode {
	case FollowSpring:
		spring := harmonica.NewSpring(float64(dt), g.cfg.SpringFrequency, g.cfg.SpringDamping)
		y, v := spring.Update(float64(pos[1]), g.velocity, float64(target))
		pos[1], g.velocity = float32(y), v
	default:
		pos[1] = approach(pos[1], target, dt*g.cfg.Rate)
	}
}

// approach moves y toward target by fraction t, clamped to [0, 1].
// A fraction of 1 or more lands exactly on target.
func approach(y, target, t float32) float32 {
	if t >= 1 {
		return target
	}
	if t <= 0 {
		return y
	}
	return y + (target-y)*t
}
