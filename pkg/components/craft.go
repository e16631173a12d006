package components

// Craft 玩家飞行器
type Craft struct {
	Position Vec3
	Velocity Vec3

	// AutopilotTarget 自动驾驶当前目标，零值表示无目标
	// 只保存引用，每个 tick 通过池重新解析，槽位回收后引用自动失效
	AutopilotTarget EnemyRef
	// Autopilot 是否启用辅助转向
	Autopilot bool
}

// NewCraft 创建位于原点的飞行器
func NewCraft() *Craft {
	return &Craft{Autopilot: true}
}
