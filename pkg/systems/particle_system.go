package systems

import (
	"math"
	"math/rand/v2"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/utils"
)

const (
	burstCount    = 6
	burstSpeed    = 0.01
	burstLifetime = 40
	debrisGravity = 0.0004
	// particleRadius is the radius of fresh debris; it shrinks to 0 over the lifetime.
	particleRadius = 0.015
)

// ParticleSystem owns the kill-debris particles.
// Particles live in a fixed pool: a burst that does not fit is truncated,
// never allocated.
type ParticleSystem struct {
	particles *ecs.Pool[components.Particle]
	rng       *rand.Rand
	buf       []ecs.Handle
}

// NewParticleSystem creates a particle system with a fixed capacity.
func NewParticleSystem(capacity int, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		particles: ecs.NewPool[components.Particle](capacity),
		rng:       rng,
	}
}

// Burst spawns debris at pos, spread evenly around the X axis.
func (ps *ParticleSystem) Burst(pos components.Vec3) {
	offset := ps.rng.Float64() * 2 * math.Pi
	for i := 0; i < burstCount; i++ {
		a := offset + float64(i)*2*math.Pi/burstCount
		_, ok := ps.particles.Acquire(components.Particle{
			Position: pos,
			Velocity: components.Vec3{X: -burstSpeed / 2, Y: burstSpeed * math.Sin(a), Z: burstSpeed * math.Cos(a)},
			Lifetime: components.LifetimeComponent{MaxTicks: burstLifetime},
		})
		if !ok {
			return
		}
	}
}

// Update moves every particle and frees the expired ones.
func (ps *ParticleSystem) Update() {
	ps.buf = ps.particles.Snapshot(ps.buf)
	for _, h := range ps.buf {
		p, _ := ps.particles.Get(h)
		p.Velocity.Y -= debrisGravity
		p.Position = p.Position.Add(p.Velocity)
		if p.Lifetime.Step() {
			ps.particles.Free(h)
		}
	}
}

// Clear drops every particle, used on stage reset.
func (ps *ParticleSystem) Clear() {
	ps.particles.Clear(nil)
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int { return ps.particles.Len() }

// Visibles appends the particles to dst.
func (ps *ParticleSystem) Visibles(dst []components.Visible) []components.Visible {
	for _, p := range ps.particles.All() {
		dst = append(dst, components.Visible{
			Kind:     components.VisibleParticle,
			Position: p.Position,
			Radius:   particleRadius * (1 - utils.EaseOutQuad(p.Lifetime.Progress())),
			Visible:  true,
		})
	}
	return dst
}
