package weapons

import (
	"testing"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/types"
)

func gunConfig() config.WeaponConfig {
	return config.WeaponConfig{
		ID: "gun", Type: config.WeaponTypeGun,
		Damage: 1, DamagePerLevel: 0.5,
		Interval: 10, Speed: 0.05, Radius: 0.02, Lifetime: 60, Capacity: 4,
	}
}

// targetsAt 在给定 X 位置构造存活敌人
func targetsAt(xs ...float64) []components.Target {
	pool := ecs.NewPool[components.Enemy](len(xs))
	targets := make([]components.Target, 0, len(xs))
	for _, x := range xs {
		h, _ := pool.Acquire(components.Enemy{
			Kind:     types.EnemyDrone,
			Position: components.Vec3{X: x},
			Radius:   0.05,
			HP:       10,
		})
		e, _ := pool.Get(h)
		targets = append(targets, components.Target{Ref: components.EnemyRef{ID: h}, Enemy: e})
	}
	return targets
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(components.NewCraft(), config.WeaponConfig{ID: "x", Type: "railgun"}, game.NewState(game.Snapshot{}))
	if err == nil {
		t.Error("expected error for unknown weapon type")
	}
}

func TestListenersCheckedAtConstruction(t *testing.T) {
	craft := components.NewCraft()
	state := game.NewState(game.Snapshot{})
	ws, err := NewAll(craft, []config.WeaponConfig{
		gunConfig(),
		{ID: "laser", Type: config.WeaponTypeLaser, Length: 1, Radius: 0.05},
		{ID: "missile", Type: config.WeaponTypeMissile, Interval: 30, Lifetime: 100, Capacity: 2, Speed: 0.03, Turn: 0.2},
	}, state)
	if err != nil {
		t.Fatalf("NewAll() error: %v", err)
	}

	ls := Listeners(ws)
	if len(ls) != 1 {
		t.Fatalf("expected only the missile to listen for removals, got %d listeners", len(ls))
	}
	if _, ok := ls[0].(*Missile); !ok {
		t.Errorf("unexpected listener %T", ls[0])
	}
}

func TestGunFiresOnInterval(t *testing.T) {
	g := NewGun(components.NewCraft(), gunConfig(), game.NewState(game.Snapshot{})).(*Gun)

	for tick := int64(0); tick < 30; tick++ {
		g.Update(tick)
	}
	// tick 0, 10, 20
	if g.Shots() != 3 {
		t.Errorf("expected 3 shots, got %d", g.Shots())
	}
}

func TestGunHitsAllOverlapping(t *testing.T) {
	state := game.NewState(game.Snapshot{Upgrades: map[string]int{"gun": 2}})
	g := NewGun(components.NewCraft(), gunConfig(), state).(*Gun)
	g.Update(0)

	// 两个敌人都与原点的子弹重叠，第三个太远
	targets := targetsAt(0.03, 0.0, 0.5)
	g.DoDamage(targets)

	// 伤害 = 1 + 0.5*2
	for i, want := range []float64{8, 8, 10} {
		if got := targets[i].Enemy.HP; got != want {
			t.Errorf("target %d hp = %v, want %v", i, got, want)
		}
	}
	if g.Shots() != 0 {
		t.Errorf("spent shot should be freed, %d left", g.Shots())
	}
}

func TestGunOrderIndependent(t *testing.T) {
	run := func(reverse bool) []float64 {
		g := NewGun(components.NewCraft(), gunConfig(), game.NewState(game.Snapshot{})).(*Gun)
		g.Update(0)
		targets := targetsAt(0.0, 0.04)
		view := append([]components.Target(nil), targets...)
		if reverse {
			view[0], view[1] = view[1], view[0]
		}
		g.DoDamage(view)
		return []float64{targets[0].Enemy.HP, targets[1].Enemy.HP}
	}

	a, b := run(false), run(true)
	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("damage depends on iteration order: %v vs %v", a, b)
	}
}

func TestLaserBand(t *testing.T) {
	craft := components.NewCraft()
	cfg := config.WeaponConfig{ID: "laser", Type: config.WeaponTypeLaser, Damage: 0.5, Length: 1, Radius: 0.05}
	l := NewLaser(craft, cfg, game.NewState(game.Snapshot{})).(*Laser)
	l.Update(0)

	targets := targetsAt(0.6, 1.5, -0.2)
	l.DoDamage(targets)

	if targets[0].Enemy.HP != 9.5 {
		t.Errorf("enemy inside the beam hp = %v, want 9.5", targets[0].Enemy.HP)
	}
	if targets[1].Enemy.HP != 10 || targets[2].Enemy.HP != 10 {
		t.Error("enemies outside the beam should not be damaged")
	}

	vs := l.Visibles(nil)
	if len(vs) != 1 || vs[0].Length != 0.6 {
		t.Errorf("beam should be cut at the nearest hit, got %+v", vs)
	}
}

func TestLaserLockedBelowMinLevel(t *testing.T) {
	cfg := config.WeaponConfig{ID: "laser", Type: config.WeaponTypeLaser, Damage: 1, Length: 1, Radius: 0.05, MinLevel: 1}
	l := NewLaser(components.NewCraft(), cfg, game.NewState(game.Snapshot{}))

	targets := targetsAt(0.5)
	l.Update(0)
	l.DoDamage(targets)
	if targets[0].Enemy.HP != 10 {
		t.Error("locked weapon should not deal damage")
	}
	if len(l.Visibles(nil)) != 0 {
		t.Error("locked weapon should not be visible")
	}
}

func TestMissileRemovalClearsLock(t *testing.T) {
	craft := components.NewCraft()
	cfg := config.WeaponConfig{ID: "missile", Type: config.WeaponTypeMissile, Damage: 3, Interval: 100, Speed: 0.01, Radius: 0.01, Lifetime: 100, Capacity: 2, Turn: 0.5}
	m := NewMissile(craft, cfg, game.NewState(game.Snapshot{})).(*Missile)
	m.Update(0)

	targets := targetsAt(1.0)
	m.DoDamage(targets)

	var locked components.EnemyRef
	for _, p := range m.missiles.All() {
		locked = p.Target
	}
	if locked != targets[0].Ref {
		t.Fatalf("missile should lock the nearest enemy, got %+v", locked)
	}

	m.OnEnemyRemoved(targets[0].Ref)
	for _, p := range m.missiles.All() {
		if !p.Target.IsZero() {
			t.Error("lock should be cleared after removal")
		}
	}
}
