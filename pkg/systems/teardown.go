package systems

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/weapons"
	"go.uber.org/zap"
)

// Teardown 关卡或超越次数变化时清空所有关卡池
//
// 存活和死亡可见的敌人全部立即回收，每个敌人通知一次监听移除的武器。
// 同时切换关卡模型可见性。
type Teardown struct {
	stages    []*Stage
	listeners []weapons.RemovalListener
	effects   *ParticleSystem
	craft     *components.Craft
	log       *zap.Logger
}

// NewTeardown 创建清场观察者，effects 可为 nil
func NewTeardown(stages []*Stage, listeners []weapons.RemovalListener, effects *ParticleSystem, craft *components.Craft, log *zap.Logger) *Teardown {
	return &Teardown{
		stages:    stages,
		listeners: listeners,
		effects:   effects,
		craft:     craft,
		log:       log,
	}
}

// Attach 订阅会话状态，返回取消订阅函数
func (t *Teardown) Attach(state *game.State) func() {
	ShowStage(t.stages, state.Get().Stage)
	return state.Subscribe(t.onChange)
}

func (t *Teardown) onChange(state, prev game.Snapshot) {
	if state.Stage == prev.Stage && state.Transcendence == prev.Transcendence {
		return
	}
	n := t.Reset()
	ShowStage(t.stages, state.Stage)
	t.log.Info("关卡切换，清空敌人",
		zap.String("from", prev.Stage),
		zap.String("to", state.Stage),
		zap.Int("transcendence", state.Transcendence),
		zap.Int("freed", n))
}

// Reset 回收所有关卡池中的敌人，返回回收数量
func (t *Teardown) Reset() int {
	n := 0
	for _, s := range t.stages {
		s.Pool.Clear(func(ref components.EnemyRef, _ *components.Enemy) {
			n++
			for _, l := range t.listeners {
				l.OnEnemyRemoved(ref)
			}
		})
	}
	if t.effects != nil {
		t.effects.Clear()
	}
	t.craft.AutopilotTarget = components.EnemyRef{}
	return n
}

// ShowStage 只显示 id 对应的关卡模型
func ShowStage(stages []*Stage, id string) {
	for _, s := range stages {
		s.Model.Visible = s.Config.ID == id
	}
}
