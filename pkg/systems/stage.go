package systems

import (
	"iter"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
)

// StageModel 关卡的场景贡献
// 切换关卡时只切换可见性，不销毁
type StageModel struct {
	Config  *config.StageConfig
	Visible bool
}

// Stage 关卡目录中的一项：场景模型 + 敌人池
type Stage struct {
	Index  int
	Config *config.StageConfig
	Model  *StageModel
	Pool   *StagePool
}

// SpawnerFactory 为关卡创建生成策略
type SpawnerFactory func(stage *config.StageConfig) (Spawner, error)

// NewStages 按目录顺序创建所有关卡
func NewStages(catalog *config.StageCatalog, poolSize int, newSpawner SpawnerFactory) ([]*Stage, error) {
	stages := make([]*Stage, 0, len(catalog.Stages))
	for i := range catalog.Stages {
		cfg := &catalog.Stages[i]
		spawner, err := newSpawner(cfg)
		if err != nil {
			return nil, err
		}
		stages = append(stages, &Stage{
			Index:  i,
			Config: cfg,
			Model:  CreateModel(cfg),
			Pool:   CreateEnemyPool(i, poolSize, spawner),
		})
	}
	return stages, nil
}

// CreateModel 创建关卡模型，初始不可见
func CreateModel(cfg *config.StageConfig) *StageModel {
	return &StageModel{Config: cfg}
}

// CreateEnemyPool 创建关卡敌人池
func CreateEnemyPool(stage, capacity int, spawner Spawner) *StagePool {
	return &StagePool{
		stage:   stage,
		enemies: ecs.NewPool[components.Enemy](capacity),
		spawner: spawner,
	}
}

// StagePool 单个关卡的敌人池
//
// 存活和死亡可见两组敌人共用同一个槽位池，按 Phase 区分。
// 只有生成器（Acquire）和回收阶段（Retire/Free）会修改池。
type StagePool struct {
	stage   int
	enemies *ecs.Pool[components.Enemy]
	spawner Spawner

	// dropped 因池满被丢弃的生成请求数（调试用）
	dropped int
}

// Spawn 让本关卡的生成策略在 tick 时生成敌人
func (p *StagePool) Spawn(tick int64) {
	if p.spawner != nil {
		p.spawner.Spawn(tick, p)
	}
}

// Acquire 实现 SpawnTarget：放入一个存活敌人
// 池满时返回 false，请求被静默丢弃
func (p *StagePool) Acquire(e components.Enemy) (ecs.Handle, bool) {
	e.Phase = components.EnemyAlive
	if e.Origin == (components.Vec3{}) {
		e.Origin = e.Position
	}
	h, ok := p.enemies.Acquire(e)
	if !ok {
		p.dropped++
	}
	return h, ok
}

// Ref 返回句柄在本关卡的引用
func (p *StagePool) Ref(h ecs.Handle) components.EnemyRef {
	return components.EnemyRef{Stage: p.stage, ID: h}
}

// Get 按句柄取敌人，句柄失效时返回 false
func (p *StagePool) Get(h ecs.Handle) (*components.Enemy, bool) {
	return p.enemies.Get(h)
}

// Alive 存活敌人的惰性序列，每次调用重新计算
func (p *StagePool) Alive() iter.Seq2[ecs.Handle, *components.Enemy] {
	return p.phase(components.EnemyAlive)
}

// Dead 死亡可见敌人的惰性序列，每次调用重新计算
func (p *StagePool) Dead() iter.Seq2[ecs.Handle, *components.Enemy] {
	return p.phase(components.EnemyDying)
}

func (p *StagePool) phase(phase components.EnemyPhase) iter.Seq2[ecs.Handle, *components.Enemy] {
	return func(yield func(ecs.Handle, *components.Enemy) bool) {
		for h, e := range p.enemies.All() {
			if e.Phase != phase {
				continue
			}
			if !yield(h, e) {
				return
			}
		}
	}
}

// SnapshotAlive 把存活敌人句柄写入 dst[:0]，遍历期间需要修改池时使用
func (p *StagePool) SnapshotAlive(dst []ecs.Handle) []ecs.Handle {
	dst = dst[:0]
	for h := range p.Alive() {
		dst = append(dst, h)
	}
	return dst
}

// SnapshotDead 把死亡可见敌人句柄写入 dst[:0]
func (p *StagePool) SnapshotDead(dst []ecs.Handle) []ecs.Handle {
	dst = dst[:0]
	for h := range p.Dead() {
		dst = append(dst, h)
	}
	return dst
}

// Retire 把被击杀的敌人转入死亡可见阶段，Time 从 0 开始计死亡时间
func (p *StagePool) Retire(h ecs.Handle) bool {
	e, ok := p.enemies.Get(h)
	if !ok || e.Phase != components.EnemyAlive {
		return false
	}
	e.Phase = components.EnemyDying
	e.Time = 0
	return true
}

// Free 回收槽位，对失效句柄是空操作
func (p *StagePool) Free(h ecs.Handle) bool {
	return p.enemies.Free(h)
}

// Clear 回收所有敌人，回收前对每个敌人调用 fn
func (p *StagePool) Clear(fn func(components.EnemyRef, *components.Enemy)) {
	p.enemies.Clear(func(h ecs.Handle, e *components.Enemy) {
		if fn != nil {
			fn(p.Ref(h), e)
		}
	})
}

// Counts 返回存活和死亡可见的敌人数量
func (p *StagePool) Counts() (alive, dead int) {
	for _, e := range p.enemies.All() {
		if e.Phase == components.EnemyAlive {
			alive++
		} else {
			dead++
		}
	}
	return alive, dead
}

// Dropped 返回因池满被丢弃的生成请求数
func (p *StagePool) Dropped() int { return p.dropped }
