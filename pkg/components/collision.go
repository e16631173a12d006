package components

import "math"

// SphereHit 球形命中检测：两球心距离不超过半径之和
func SphereHit(a Vec3, ra float64, b Vec3, rb float64) bool {
	d := a.Sub(b)
	r := ra + rb
	return d.X*d.X+d.Y*d.Y+d.Z*d.Z <= r*r
}

// Band 轴对齐的命中带（激光）
// 覆盖 X ∈ [MinX, MaxX]，Y、Z 方向以 Center 为中心、HalfHeight/HalfDepth 为半宽
type Band struct {
	MinX, MaxX float64
	Center     Vec3
	HalfHeight float64
	HalfDepth  float64
}

// Hits 判断半径为 r 的球体是否与命中带重叠
func (b Band) Hits(p Vec3, r float64) bool {
	if p.X+r < b.MinX || p.X-r > b.MaxX {
		return false
	}
	if math.Abs(p.Y-b.Center.Y) > b.HalfHeight+r {
		return false
	}
	return math.Abs(p.Z-b.Center.Z) <= b.HalfDepth+r
}
