package systems

import (
	"math"
	"math/rand/v2"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/weapons"
	"go.uber.org/zap"
)

// WorldOptions 创建 World 所需的依赖
type WorldOptions struct {
	Game     *config.GameConfig
	Catalog  *config.StageCatalog
	Weapons  []config.WeaponConfig
	State    *game.State
	Effect   Effect
	Poster   Poster
	Spawners SpawnerFactory
	Log      *zap.Logger
}

// World 一个会话的全部模拟对象
//
// Tick 由调度器在更新阶段调用，按固定顺序执行：
// 生成 → 敌人移动 → 飞行器 → 武器 → 伤害 → 回收 → 自动驾驶 → 过场 → 周期触发。
// 渲染阶段只读取 Visibles 和 Camera，并在渲染前调用 FollowCamera。
type World struct {
	Catalog *config.StageCatalog
	Stages  []*Stage
	Craft   *components.Craft
	Camera  *components.Camera
	State   *game.State
	Weapons []weapons.Weapon
	Effects *ParticleSystem

	Transition *TransitionSystem
	reaper     *Reaper
	autopilot  *Autopilot
	teardown   *Teardown

	ticksPerSecond int64
	input          components.Vec3
	targets        []components.Target
	unsubscribe    func()
	log            *zap.Logger
}

// NewWorld 创建关卡、武器和各系统，并订阅会话状态
func NewWorld(opts WorldOptions) (*World, error) {
	stages, err := NewStages(opts.Catalog, opts.Game.EnemyPoolSize, opts.Spawners)
	if err != nil {
		return nil, err
	}

	craft := components.NewCraft()
	camera := components.NewCamera()
	ws, err := weapons.NewAll(craft, opts.Weapons, opts.State)
	if err != nil {
		return nil, err
	}
	listeners := weapons.Listeners(ws)

	seed := uint64(opts.Game.RandomSeed)
	effects := NewParticleSystem(opts.Game.ParticlePoolSize, rand.New(rand.NewPCG(seed, seed+1)))

	w := &World{
		Catalog:        opts.Catalog,
		Stages:         stages,
		Craft:          craft,
		Camera:         camera,
		State:          opts.State,
		Weapons:        ws,
		Effects:        effects,
		Transition:     NewTransitionSystem(opts.Catalog, opts.State, craft, camera, opts.Effect, opts.Poster),
		reaper:         NewReaper(opts.State, listeners, rand.New(rand.NewPCG(seed, seed+2)), effects),
		autopilot:      NewAutopilot(opts.Game.AutopilotMargin),
		teardown:       NewTeardown(stages, listeners, effects, craft, opts.Log),
		ticksPerSecond: int64(opts.Game.TicksPerSecond),
		log:            opts.Log,
	}
	w.unsubscribe = w.teardown.Attach(opts.State)

	opts.Log.Info("世界已创建",
		zap.Int("stages", len(stages)),
		zap.Int("weapons", len(ws)),
		zap.Int("removalListeners", len(listeners)))
	return w, nil
}

// Close 取消对会话状态的订阅
func (w *World) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
}

// SetInput 设置手动操控方向，零向量表示交给自动驾驶
func (w *World) SetInput(dir components.Vec3) {
	w.input = dir
}

// Current 返回当前关卡的目录索引，找不到时返回 -1
func (w *World) Current() int {
	return w.Catalog.Index(w.State.Get().Stage)
}

// Tick 执行一个模拟 tick
func (w *World) Tick(tick int64) {
	current := w.Current()
	if current >= 0 {
		w.Stages[current].Pool.Spawn(tick)
	}

	for _, s := range w.Stages {
		MoveEnemies(s.Pool)
	}

	if !w.Transition.State().Transitioning {
		SteerCraft(w.Craft, w.input, w.autopilotTarget())
	}

	for _, wp := range w.Weapons {
		wp.Update(tick)
	}

	w.targets = CollectTargets(w.Stages, w.targets)
	ApplyDamage(w.Weapons, w.targets)
	clear(w.targets)

	for _, s := range w.Stages {
		w.reaper.Reap(s.Pool)
	}
	w.Effects.Update()

	// 回收阶段的观察者可能切换了关卡
	w.autopilot.Update(w.Craft, w.Stages, w.Current())
	w.Transition.Update()

	if w.ticksPerSecond > 0 && tick%w.ticksPerSecond == 0 {
		w.State.Countdown()
	}
}

// autopilotTarget 解析飞行器的目标引用，失效时返回 nil
func (w *World) autopilotTarget() *components.Enemy {
	ref := w.Craft.AutopilotTarget
	if ref.IsZero() || ref.Stage < 0 || ref.Stage >= len(w.Stages) {
		return nil
	}
	e, ok := w.Stages[ref.Stage].Pool.Get(ref.ID)
	if !ok {
		return nil
	}
	return e
}

// FollowCamera 渲染前钩子：镜头跟随飞行器
// 过场中镜头由过场状态机控制，不跟随
func (w *World) FollowCamera() {
	if w.Transition.State().Transitioning {
		return
	}
	lookAtX := 0.0
	if current := w.Current(); current >= 0 {
		lookAtX = w.Stages[current].Config.LookAtX
	}
	w.Camera.Position.Z = w.Craft.Position.Z
	w.Camera.LookAt = components.Vec3{X: lookAtX, Z: w.Craft.Position.Z}
	w.Camera.Rotation.X = w.Craft.Velocity.X * 0.05
	w.Camera.Rotation.Y = -math.Abs(w.Craft.Velocity.Y * 0.02)
}

// Visibles 把当前场景的可见对象追加到 dst[:0]
func (w *World) Visibles(dst []components.Visible) []components.Visible {
	dst = dst[:0]
	for _, s := range w.Stages {
		dst = append(dst, components.Visible{
			Kind:    components.VisibleStageModel,
			Visible: s.Model.Visible,
			Label:   s.Config.Name,
		})
	}
	for _, s := range w.Stages {
		for _, e := range s.Pool.Alive() {
			dst = append(dst, enemyVisible(components.VisibleEnemy, e))
		}
		for _, e := range s.Pool.Dead() {
			dst = append(dst, enemyVisible(components.VisibleDyingEnemy, e))
		}
	}
	for _, wp := range w.Weapons {
		dst = wp.Visibles(dst)
	}
	dst = w.Effects.Visibles(dst)
	return append(dst, components.Visible{
		Kind:     components.VisibleCraft,
		Position: w.Craft.Position,
		Rotation: w.Craft.Velocity,
		Radius:   0.04,
		Visible:  true,
	})
}

func enemyVisible(kind components.VisibleKind, e *components.Enemy) components.Visible {
	return components.Visible{
		Kind:     kind,
		Position: e.Position,
		Rotation: e.Rotation,
		Radius:   e.Radius,
		Visible:  true,
		Label:    e.Kind.String(),
	}
}

// Stats 调试统计
type Stats struct {
	Alive, Dead, Dropped, Particles int
}

// Stats 汇总所有关卡池的占用
func (w *World) Stats() Stats {
	var st Stats
	for _, s := range w.Stages {
		a, d := s.Pool.Counts()
		st.Alive += a
		st.Dead += d
		st.Dropped += s.Pool.Dropped()
	}
	st.Particles = w.Effects.Len()
	return st
}
