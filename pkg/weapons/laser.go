package weapons

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/game"
)

// Laser 从飞行器向前的持续光束，对光束内的所有敌人每 tick 造成伤害
type Laser struct {
	level
	craft *components.Craft
	// length 本 tick 光束实际长度：被最近的敌人截断
	length float64
}

// NewLaser 创建激光
func NewLaser(craft *components.Craft, cfg config.WeaponConfig, state *game.State) Weapon {
	return &Laser{level: level{cfg: cfg, state: state}, craft: craft}
}

// ID 实现 Weapon
func (l *Laser) ID() string { return l.cfg.ID }

// Update 实现 Weapon
func (l *Laser) Update(int64) {
	l.length = l.cfg.Length
}

func (l *Laser) band() components.Band {
	return components.Band{
		MinX:       l.craft.Position.X,
		MaxX:       l.craft.Position.X + l.cfg.Length,
		Center:     l.craft.Position,
		HalfHeight: l.cfg.Radius,
		HalfDepth:  l.cfg.Radius,
	}
}

// DoDamage 实现 Weapon
func (l *Laser) DoDamage(targets []components.Target) {
	if !l.enabled() {
		return
	}
	band := l.band()
	dmg := l.damage()
	for _, t := range targets {
		if !band.Hits(t.Enemy.Position, t.Enemy.Radius) {
			continue
		}
		t.Enemy.HP -= dmg
		if d := t.Enemy.Position.X - l.craft.Position.X; d >= 0 && d < l.length {
			l.length = d
		}
	}
}

// Visibles 实现 Weapon
func (l *Laser) Visibles(dst []components.Visible) []components.Visible {
	if !l.enabled() {
		return dst
	}
	return append(dst, components.Visible{
		Kind:     components.VisibleBeam,
		Position: l.craft.Position,
		Radius:   l.cfg.Radius,
		Length:   l.length,
		Visible:  true,
	})
}
