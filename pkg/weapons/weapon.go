// Package weapons 实现绑定到玩家飞行器的武器
//
// 每个武器拥有自己的弹体子池，每个 tick 先 Update（移动、发射），
// 再由伤害结算调用 DoDamage。武器只修改敌人 HP，从不回收敌人。
package weapons

import (
	"fmt"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/game"
)

// Weapon 武器
type Weapon interface {
	// ID 武器 ID（同时是升级项名称）
	ID() string
	// Update 每个 tick 调用一次：推进弹体并按间隔发射
	Update(tick int64)
	// DoDamage 对存活敌人做命中检测并扣除 HP
	// targets 中的指针只在本 tick 有效，不能保存
	DoDamage(targets []components.Target)
	// Visibles 把武器的可见对象追加到 dst
	Visibles(dst []components.Visible) []components.Visible
}

// RemovalListener 需要知道敌人被移除的武器实现该接口
// 敌人被回收（击杀、飞出屏幕、切换关卡）后调用，每个敌人每次移除调用一次
type RemovalListener interface {
	OnEnemyRemoved(ref components.EnemyRef)
}

// Factory 根据配置创建绑定到飞行器的武器
type Factory func(craft *components.Craft, cfg config.WeaponConfig, state *game.State) Weapon

var factories = map[string]Factory{
	config.WeaponTypeGun:     NewGun,
	config.WeaponTypeLaser:   NewLaser,
	config.WeaponTypeMissile: NewMissile,
}

// New 按配置中的武器类型创建武器
func New(craft *components.Craft, cfg config.WeaponConfig, state *game.State) (Weapon, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown weapon type %q for weapon %s", cfg.Type, cfg.ID)
	}
	return factory(craft, cfg, state), nil
}

// NewAll 创建配置中的全部武器，顺序与配置一致
func NewAll(craft *components.Craft, cfgs []config.WeaponConfig, state *game.State) ([]Weapon, error) {
	ws := make([]Weapon, 0, len(cfgs))
	for _, cfg := range cfgs {
		w, err := New(craft, cfg, state)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return ws, nil
}

// Listeners 在创建时挑出实现了 RemovalListener 的武器
func Listeners(ws []Weapon) []RemovalListener {
	var ls []RemovalListener
	for _, w := range ws {
		if l, ok := w.(RemovalListener); ok {
			ls = append(ls, l)
		}
	}
	return ls
}

// level 读取武器当前升级等级
type level struct {
	cfg   config.WeaponConfig
	state *game.State
}

func (l level) current() int {
	return l.state.Get().Upgrades[l.cfg.ID]
}

// enabled 升级等级达到 MinLevel 后武器才工作
func (l level) enabled() bool {
	return l.current() >= l.cfg.MinLevel
}

// damage 随升级等级线性增长
func (l level) damage() float64 {
	return l.cfg.Damage + l.cfg.DamagePerLevel*float64(l.current())
}
