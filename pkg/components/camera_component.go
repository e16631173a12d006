package components

// CameraInitialPosition 镜头初始位置
var CameraInitialPosition = Vec3{X: -0.5, Y: 0.6, Z: 0}

// Camera 镜头姿态
// 渲染协作方只读取位置和欧拉角，核心在模拟和渲染前阶段写入
type Camera struct {
	Position Vec3
	Rotation Vec3 // 欧拉角（弧度）：X 俯仰，Y 偏航，Z 翻滚
	LookAt   Vec3 // 注视点，渲染时作为画面中心
}

// NewCamera 创建处于初始姿态的镜头
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset 恢复初始姿态
func (c *Camera) Reset() {
	c.Position = CameraInitialPosition
	c.Rotation = Vec3{}
	c.LookAt = Vec3{}
}
