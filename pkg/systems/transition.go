package systems

import (
	"fmt"
	"math"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/game"
)

// Direction 过场方向
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// DirectionOf 目标关卡的目录索引不小于当前关卡时为前进，否则为后退
func DirectionOf(catalog *config.StageCatalog, from, to string) Direction {
	if catalog.Index(to) >= catalog.Index(from) {
		return Forward
	}
	return Backward
}

// TransitionState 过场状态机状态
// Transitioning 为 false 时是 Stable(Stage)，否则是 Transitioning(From, To, Direction)
type TransitionState struct {
	Transitioning bool
	Stage         string
	From, To      string
	Direction     Direction
}

func (s TransitionState) String() string {
	if !s.Transitioning {
		return fmt.Sprintf("Stable(%s)", s.Stage)
	}
	return fmt.Sprintf("Transitioning(%s, %s, %s)", s.From, s.To, s.Direction)
}

// Effect 渲染方提供的过场特效
// 播放中重复调用 Play 是空操作；播放结束时调用 onDone
type Effect interface {
	Play(onDone func())
}

// Poster 把回调推迟到下一个更新阶段开头执行
type Poster interface {
	Post(fn func())
}

// TransitionSystem 关卡过场状态机
//
// 会话状态中设置了目标关卡即进入过场。前进过场时飞行器沿 X 加速飞出，
// 镜头逐 tick 偏航、翻滚、拉近；飞行器超过 TransitionExitX 或方向为后退时播放特效。
// 特效结束后飞行器和镜头复位，目标关卡成为当前关卡。
type TransitionSystem struct {
	catalog *config.StageCatalog
	state   *game.State
	craft   *components.Craft
	camera  *components.Camera
	effect  Effect
	poster  Poster

	playing bool
}

// NewTransitionSystem 创建过场状态机
func NewTransitionSystem(catalog *config.StageCatalog, state *game.State, craft *components.Craft, camera *components.Camera, effect Effect, poster Poster) *TransitionSystem {
	return &TransitionSystem{
		catalog: catalog,
		state:   state,
		craft:   craft,
		camera:  camera,
		effect:  effect,
		poster:  poster,
	}
}

// State 返回当前状态
func (t *TransitionSystem) State() TransitionState {
	s := t.state.Get()
	if s.StageTransitingTo == "" {
		return TransitionState{Stage: s.Stage}
	}
	return TransitionState{
		Transitioning: true,
		From:          s.Stage,
		To:            s.StageTransitingTo,
		Direction:     DirectionOf(t.catalog, s.Stage, s.StageTransitingTo),
	}
}

// Playing 返回过场特效是否在播放
func (t *TransitionSystem) Playing() bool {
	return t.playing
}

// Update 每个 tick 推进一次
func (t *TransitionSystem) Update() {
	st := t.State()
	if !st.Transitioning {
		return
	}

	if st.Direction == Forward {
		t.craft.Position.X += config.TransitionBaseSpeed + math.Max(0, t.craft.Position.X)*config.TransitionAcceleration
		t.camera.Rotation.Y += config.TransitionYaw
		t.camera.Rotation.Z += config.TransitionRoll
		t.camera.Position.Z += config.TransitionZoom
	}

	if t.playing {
		return
	}
	if st.Direction == Backward || t.craft.Position.X > config.TransitionExitX {
		t.playing = true
		t.effect.Play(func() { t.poster.Post(t.complete) })
	}
}

// complete 特效结束：复位并回到稳定状态
func (t *TransitionSystem) complete() {
	t.playing = false
	t.craft.Position = components.Vec3{}
	t.craft.Velocity = components.Vec3{}
	t.camera.Reset()
	t.state.CompleteTransition()
}
