package systems

import (
	"github.com/gonewx/acg/pkg/components"
)

// Autopilot 自动驾驶选敌，每个 tick 重新评估
type Autopilot struct {
	margin float64
}

// NewAutopilot 创建自动驾驶，margin 为候选敌人须领先飞行器的最小 X 距离
func NewAutopilot(margin float64) *Autopilot {
	return &Autopilot{margin: margin}
}

// Update 保留仍有效的目标，否则在当前关卡池中重新选择
func (a *Autopilot) Update(craft *components.Craft, stages []*Stage, current int) {
	if current < 0 || current >= len(stages) {
		craft.AutopilotTarget = components.EnemyRef{}
		return
	}
	pool := stages[current].Pool
	if a.keep(craft, pool, current) {
		return
	}
	craft.AutopilotTarget = SelectTarget(craft.Position, pool, a.margin)
}

// keep 目标仍存活、仍在当前关卡存活集合中、且仍在飞行器前方
func (a *Autopilot) keep(craft *components.Craft, pool *StagePool, current int) bool {
	ref := craft.AutopilotTarget
	if ref.IsZero() || ref.Stage != current {
		return false
	}
	e, ok := pool.Get(ref.ID)
	if !ok || e.Phase != components.EnemyAlive || e.Dead() {
		return false
	}
	return e.Position.X >= craft.Position.X
}

// SelectTarget 选择 X > from.X + margin 的最近（X 最小）可锁定敌人
// X 相同时保留最先遇到的，没有候选时返回零值
func SelectTarget(from components.Vec3, pool *StagePool, margin float64) components.EnemyRef {
	var (
		best  components.EnemyRef
		bestX float64
	)
	for h, e := range pool.Alive() {
		if !e.Kind.Targetable() || e.Dead() || e.Position.X <= from.X+margin {
			continue
		}
		if best.IsZero() || e.Position.X < bestX {
			best, bestX = pool.Ref(h), e.Position.X
		}
	}
	return best
}
