package weapons

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/game"
)

// Gun 沿 +X 直射的子弹
// 子弹命中时对所有重叠的敌人造成伤害，结果与敌人遍历顺序无关
type Gun struct {
	level
	craft *components.Craft
	shots *ecs.Pool[components.Projectile]
	buf   []ecs.Handle
	spent []ecs.Handle
}

// NewGun 创建机枪
func NewGun(craft *components.Craft, cfg config.WeaponConfig, state *game.State) Weapon {
	return &Gun{
		level: level{cfg: cfg, state: state},
		craft: craft,
		shots: ecs.NewPool[components.Projectile](cfg.Capacity),
	}
}

// ID 实现 Weapon
func (g *Gun) ID() string { return g.cfg.ID }

// Update 推进子弹，过期回收，然后按间隔发射
func (g *Gun) Update(tick int64) {
	g.buf = g.shots.Snapshot(g.buf)
	for _, h := range g.buf {
		shot, _ := g.shots.Get(h)
		shot.Position = shot.Position.Add(shot.Velocity)
		if shot.Lifetime.Step() {
			g.shots.Free(h)
		}
	}

	if !g.enabled() || tick%int64(g.cfg.Interval) != 0 {
		return
	}
	// 子池已满时本次不发射
	g.shots.Acquire(components.Projectile{
		Position: g.craft.Position,
		Velocity: components.Vec3{X: g.cfg.Speed},
		Radius:   g.cfg.Radius,
		Damage:   g.damage(),
		Lifetime: components.LifetimeComponent{MaxTicks: g.cfg.Lifetime},
	})
}

// DoDamage 实现 Weapon
func (g *Gun) DoDamage(targets []components.Target) {
	g.spent = g.spent[:0]
	for h, shot := range g.shots.All() {
		hit := false
		for _, t := range targets {
			if components.SphereHit(shot.Position, shot.Radius, t.Enemy.Position, t.Enemy.Radius) {
				t.Enemy.HP -= shot.Damage
				hit = true
			}
		}
		if hit {
			g.spent = append(g.spent, h)
		}
	}
	for _, h := range g.spent {
		g.shots.Free(h)
	}
}

// Visibles 实现 Weapon
func (g *Gun) Visibles(dst []components.Visible) []components.Visible {
	for _, shot := range g.shots.All() {
		dst = append(dst, components.Visible{
			Kind:     components.VisibleProjectile,
			Position: shot.Position,
			Radius:   shot.Radius,
			Visible:  true,
		})
	}
	return dst
}

// Shots 返回当前子弹数量
func (g *Gun) Shots() int { return g.shots.Len() }
