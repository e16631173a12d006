package components

// Particle 击杀时产生的碎片特效
type Particle struct {
	Position Vec3
	Velocity Vec3
	Lifetime LifetimeComponent
}
