package components

import (
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/types"
)

// EnemyPhase 敌人生命周期阶段
// 槽位被回收（freed）后实体不再可见，因此不单独建模
type EnemyPhase int

const (
	// EnemyAlive 存活：参与移动、碰撞和自动驾驶选敌
	// 注意：同一 tick 内受伤到被回收之前，HP 可能已经 <= 0
	EnemyAlive EnemyPhase = iota
	// EnemyDying 已死亡但仍可见：播放坠落动画，计时结束后回收
	EnemyDying
)

// Enemy 敌人实体数据，存放在关卡的敌人池中
type Enemy struct {
	Kind  types.EnemyKind
	Phase EnemyPhase

	Position Vec3
	Velocity Vec3
	Rotation Vec3
	// Origin 出生位置，供行为计算相对运动（如正弦浮动）
	Origin Vec3
	// Radius 命中半径
	Radius float64

	HP float64
	// Time 存活阶段为出生后的 tick 数，死亡阶段为死亡后的 tick 数
	Time int

	// 击杀奖励
	Money int
	Items []string
}

// Dead 返回 HP 是否已归零
func (e *Enemy) Dead() bool {
	return e.HP <= 0
}

// EnemyRef 跨关卡池引用一个敌人
// Stage 为关卡在目录中的索引。零值不指向任何敌人。
type EnemyRef struct {
	Stage int
	ID    ecs.Handle
}

// IsZero 判断引用是否为空
func (r EnemyRef) IsZero() bool {
	return r.ID.IsZero()
}

// Target 单个 tick 内传给武器的存活敌人视图
// Enemy 指针只在本 tick 有效
type Target struct {
	Ref   EnemyRef
	Enemy *Enemy
}
