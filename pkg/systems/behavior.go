package systems

import (
	"math"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/types"
)

// Behavior 敌人行为
// 每个分类一个实现，不在实体上挂回调
type Behavior interface {
	// Update 存活阶段每个 tick 的移动
	Update(e *components.Enemy)
	// OnKilled 击杀时调用，在读取奖励之前
	OnKilled(e *components.Enemy)
}

// 行为参数
const (
	balloonAmplitude = 0.1
	balloonFrequency = 0.05

	jetAcceleration = 1.01
	jetMaxSpeed     = 0.05
	jetDive         = 0.0005

	// BonusWindowTicks 奖励飞船出现后该时间内被击杀，金钱翻倍
	BonusWindowTicks = 600

	ufoHoverX = 1.5

	coreHoldX = 1.0
	coreSpin  = 0.01
)

type linear struct{}

func (linear) Update(e *components.Enemy) {
	e.Position = e.Position.Add(e.Velocity)
}

func (linear) OnKilled(*components.Enemy) {}

// balloon 沿 X 匀速，Y 绕出生高度正弦浮动
type balloon struct{}

func (balloon) Update(e *components.Enemy) {
	e.Position.X += e.Velocity.X
	e.Position.Z += e.Velocity.Z
	e.Position.Y = e.Origin.Y + balloonAmplitude*math.Sin(float64(e.Time)*balloonFrequency)
}

func (balloon) OnKilled(*components.Enemy) {}

// jet 加速俯冲
type jet struct{}

func (jet) Update(e *components.Enemy) {
	if math.Abs(e.Velocity.X) < jetMaxSpeed {
		e.Velocity.X *= jetAcceleration
	}
	e.Velocity.Y -= jetDive
	e.Position = e.Position.Add(e.Velocity)
	e.Rotation.Z = math.Atan2(e.Velocity.Y, -e.Velocity.X)
}

func (jet) OnKilled(*components.Enemy) {}

// bonusShip 限时击杀奖励翻倍
type bonusShip struct{ linear }

func (bonusShip) OnKilled(e *components.Enemy) {
	if e.Time < BonusWindowTicks {
		e.Money *= 2
	}
}

// weatherUFO 飞到悬停点后停下，不可被自动驾驶锁定
type weatherUFO struct{}

func (weatherUFO) Update(e *components.Enemy) {
	if e.Position.X > ufoHoverX {
		e.Position.X += e.Velocity.X
	}
	e.Position.Z = e.Origin.Z + 0.05*math.Sin(float64(e.Time)*0.02)
	e.Rotation.Y += 0.02
}

func (weatherUFO) OnKilled(*components.Enemy) {}

// mothershipCore 缓慢逼近后停住并自转
type mothershipCore struct{}

func (mothershipCore) Update(e *components.Enemy) {
	if e.Position.X > coreHoldX {
		e.Position.X += e.Velocity.X
	}
	e.Rotation.Y += coreSpin
}

func (mothershipCore) OnKilled(*components.Enemy) {}

var behaviors = map[types.EnemyKind]Behavior{
	types.EnemyDrone:          linear{},
	types.EnemyBalloon:        balloon{},
	types.EnemyJet:            jet{},
	types.EnemyBonusShip:      bonusShip{},
	types.EnemyWeatherUFO:     weatherUFO{},
	types.EnemyMothershipCore: mothershipCore{},
}

// BehaviorFor 返回分类对应的行为，未知分类按匀速直线处理
func BehaviorFor(kind types.EnemyKind) Behavior {
	if b, ok := behaviors[kind]; ok {
		return b
	}
	return linear{}
}

// MoveEnemies 推进一个池中所有存活敌人
func MoveEnemies(pool *StagePool) {
	for _, e := range pool.Alive() {
		BehaviorFor(e.Kind).Update(e)
	}
}
