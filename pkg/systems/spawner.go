package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/types"
)

// SpawnTarget 生成器唯一能做的事：向当前关卡的池放入敌人
type SpawnTarget interface {
	Acquire(e components.Enemy) (ecs.Handle, bool)
}

// Spawner 关卡生成策略
// 只调用 pool.Acquire，池满时静默丢弃
type Spawner interface {
	Spawn(tick int64, pool SpawnTarget)
}

// tableWave 解析后的波次
type tableWave struct {
	cfg  config.WaveConfig
	kind types.EnemyKind
}

// TableSpawner 按 YAML 波次表生成敌人
// 随机出生位置来自按关卡种子初始化的 PCG，相同 tick 序列产生相同结果
type TableSpawner struct {
	waves []tableWave
	rng   *rand.Rand
}

// NewTableSpawner 为关卡创建表驱动生成器
func NewTableSpawner(stage *config.StageConfig) (*TableSpawner, error) {
	s := &TableSpawner{
		rng: rand.New(rand.NewPCG(uint64(stage.Seed), uint64(stage.Seed)^0x9e3779b97f4a7c15)),
	}
	for i, w := range stage.Waves {
		kind, err := types.ParseEnemyKind(w.Enemy)
		if err != nil {
			return nil, fmt.Errorf("stage %s wave %d: %w", stage.ID, i, err)
		}
		s.waves = append(s.waves, tableWave{cfg: w, kind: kind})
	}
	return s, nil
}

// Spawn 实现 Spawner
func (s *TableSpawner) Spawn(tick int64, pool SpawnTarget) {
	for _, w := range s.waves {
		if !w.due(tick) {
			continue
		}
		pool.Acquire(components.Enemy{
			Kind: w.kind,
			Position: components.Vec3{
				X: w.cfg.X,
				Y: s.between(w.cfg.YMin, w.cfg.YMax),
				Z: s.between(w.cfg.ZMin, w.cfg.ZMax),
			},
			Velocity: components.Vec3{X: -w.cfg.Speed},
			Radius:   w.cfg.Radius,
			HP:       w.cfg.HP,
			Money:    w.cfg.Money,
			Items:    append([]string(nil), w.cfg.Items...),
		})
	}
}

// due 判断波次是否在 tick 生成
func (w tableWave) due(tick int64) bool {
	if tick < w.cfg.Start {
		return false
	}
	n := tick - w.cfg.Start
	if n%w.cfg.Interval != 0 {
		return false
	}
	return w.cfg.Count == 0 || n/w.cfg.Interval < int64(w.cfg.Count)
}

func (s *TableSpawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
