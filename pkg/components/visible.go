package components

// VisibleKind 可见对象类别，渲染协作方据此选择画法
type VisibleKind int

const (
	VisibleCraft VisibleKind = iota
	VisibleEnemy
	VisibleDyingEnemy
	VisibleProjectile
	VisibleBeam
	VisibleParticle
	VisibleStageModel
)

// Visible 交给渲染协作方的对象快照
// 只包含位置、旋转和可见性，不暴露实体本身
type Visible struct {
	Kind     VisibleKind
	Position Vec3
	Rotation Vec3
	Radius   float64
	// Length 光束长度，仅 VisibleBeam 使用
	Length  float64
	Visible bool
	// Label 分类名（敌人显示名、关卡名），调试绘制用
	Label string
}
