package systems

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/types"
)

// countingListener 记录移除通知
type countingListener struct {
	removed []components.EnemyRef
}

func (l *countingListener) OnEnemyRemoved(ref components.EnemyRef) {
	l.removed = append(l.removed, ref)
}

// fixedDamage 对所有目标造成固定伤害的武器
type fixedDamage struct {
	damage float64
}

func (fixedDamage) ID() string { return "fixed" }
func (fixedDamage) Update(int64) {}
func (f fixedDamage) DoDamage(ts []components.Target) {
	for _, t := range ts {
		t.Enemy.HP -= f.damage
	}
}
func (fixedDamage) Visibles(dst []components.Visible) []components.Visible { return dst }

// queuePoster 记录推迟的回调，由测试手动执行
type queuePoster struct {
	queue []func()
}

func (p *queuePoster) Post(fn func()) { p.queue = append(p.queue, fn) }

func (p *queuePoster) drain() {
	q := p.queue
	p.queue = nil
	for _, fn := range q {
		fn()
	}
}

// instantEffect 每次 Play 立即完成
type instantEffect struct {
	plays int
}

func (e *instantEffect) Play(onDone func()) {
	e.plays++
	onDone()
}

func testCatalog(ids ...string) *config.StageCatalog {
	c := &config.StageCatalog{}
	for _, id := range ids {
		c.Stages = append(c.Stages, config.StageConfig{ID: id, Name: id})
	}
	return c
}

func testStages(catalog *config.StageCatalog, capacity int) []*Stage {
	stages, err := NewStages(catalog, capacity, func(*config.StageConfig) (Spawner, error) { return nil, nil })
	if err != nil {
		panic(err)
	}
	return stages
}

func drone(x float64) components.Enemy {
	return components.Enemy{
		Kind:     types.EnemyDrone,
		Position: components.Vec3{X: x},
		Radius:   0.05,
		HP:       10,
	}
}

func mustAcquire(p *StagePool, e components.Enemy) ecs.Handle {
	h, ok := p.Acquire(e)
	if !ok {
		panic("pool full")
	}
	return h
}
