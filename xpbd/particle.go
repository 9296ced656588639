package xpbd

import "github.com/go-gl/mathgl/mgl32"

// Particle is a single simulation node. A particle with InvMass 0 is
// permanently anchored: integration never displaces it, only an explicit
// solver reset touches it.
type Particle struct {
	ID           int32
	Position     mgl32.Vec3
	PrevPosition mgl32.Vec3
	Velocity     mgl32.Vec3
	InvMass      float32
	// RestPosition is the pose the particle returns to on solver reset, and
	// the reference for displacement output.
	RestPosition mgl32.Vec3
}

// NewParticle returns a particle at rest at the given position.
func NewParticle(id int32, pos mgl32.Vec3, invMass float32) Particle {
	return Particle{
		ID:           id,
		Position:     pos,
		PrevPosition: pos,
		RestPosition: pos,
		InvMass:      invMass,
	}
}

// Anchored reports whether the particle is permanently fixed.
func (p Particle) Anchored() bool {
	return p.InvMass == 0
}
