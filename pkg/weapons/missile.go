package weapons

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/game"
)

// Missile 追踪导弹
// 发射时锁定飞行器的自动驾驶目标（没有目标时在下一次伤害结算中锁定最近的敌人），
// 每个 tick 朝目标最近一次已知位置转向。目标被移除后导弹失去锁定，继续直飞。
type Missile struct {
	level
	craft    *components.Craft
	missiles *ecs.Pool[components.Projectile]
	buf      []ecs.Handle
	spent    []ecs.Handle
}

// NewMissile 创建导弹发射器
func NewMissile(craft *components.Craft, cfg config.WeaponConfig, state *game.State) Weapon {
	return &Missile{
		level:    level{cfg: cfg, state: state},
		craft:    craft,
		missiles: ecs.NewPool[components.Projectile](cfg.Capacity),
	}
}

// ID 实现 Weapon
func (m *Missile) ID() string { return m.cfg.ID }

// Update 转向、推进、过期回收，然后按间隔发射
func (m *Missile) Update(tick int64) {
	m.buf = m.missiles.Snapshot(m.buf)
	for _, h := range m.buf {
		p, _ := m.missiles.Get(h)
		if !p.Target.IsZero() {
			want := p.Aim.Sub(p.Position).Normalize().Scale(m.cfg.Speed)
			p.Velocity = p.Velocity.Add(want.Sub(p.Velocity).Scale(m.cfg.Turn))
		}
		p.Position = p.Position.Add(p.Velocity)
		if p.Lifetime.Step() {
			m.missiles.Free(h)
		}
	}

	if !m.enabled() || tick%int64(m.cfg.Interval) != 0 {
		return
	}
	m.missiles.Acquire(components.Projectile{
		Position: m.craft.Position,
		Velocity: components.Vec3{X: m.cfg.Speed},
		Radius:   m.cfg.Radius,
		Damage:   m.damage(),
		Lifetime: components.LifetimeComponent{MaxTicks: m.cfg.Lifetime},
		Target:   m.craft.AutopilotTarget,
		Aim:      m.craft.Position.Add(components.Vec3{X: 1}),
	})
}

// DoDamage 刷新锁定目标的位置，然后结算命中
func (m *Missile) DoDamage(targets []components.Target) {
	m.spent = m.spent[:0]
	for h, p := range m.missiles.All() {
		if p.Target.IsZero() {
			p.Target = nearestAhead(p.Position, targets)
		}
		for _, t := range targets {
			if t.Ref == p.Target {
				p.Aim = t.Enemy.Position
				break
			}
		}

		hit := false
		for _, t := range targets {
			if components.SphereHit(p.Position, p.Radius, t.Enemy.Position, t.Enemy.Radius) {
				t.Enemy.HP -= p.Damage
				hit = true
			}
		}
		if hit {
			m.spent = append(m.spent, h)
		}
	}
	for _, h := range m.spent {
		m.missiles.Free(h)
	}
}

// OnEnemyRemoved 清除锁定该敌人的导弹的目标
func (m *Missile) OnEnemyRemoved(ref components.EnemyRef) {
	for _, p := range m.missiles.All() {
		if p.Target == ref {
			p.Target = components.EnemyRef{}
		}
	}
}

// Visibles 实现 Weapon
func (m *Missile) Visibles(dst []components.Visible) []components.Visible {
	for _, p := range m.missiles.All() {
		dst = append(dst, components.Visible{
			Kind:     components.VisibleProjectile,
			Position: p.Position,
			Rotation: p.Velocity,
			Radius:   p.Radius,
			Visible:  true,
		})
	}
	return dst
}

// nearestAhead 返回 pos 前方最近的可锁定敌人，没有时返回零值
func nearestAhead(pos components.Vec3, targets []components.Target) components.EnemyRef {
	var (
		best components.EnemyRef
		dist float64
	)
	for _, t := range targets {
		if !t.Enemy.Kind.Targetable() || t.Enemy.Position.X < pos.X {
			continue
		}
		if d := t.Enemy.Position.Dist(pos); best.IsZero() || d < dist {
			best, dist = t.Ref, d
		}
	}
	return best
}
