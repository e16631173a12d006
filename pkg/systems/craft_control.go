package systems

import (
	"math"

	"github.com/gonewx/acg/pkg/components"
)

// 飞行器操控参数
const (
	craftSpeed     = 0.01
	autopilotGain  = 0.02
	autopilotLimit = 0.008

	craftMinX, craftMaxX = -0.8, 1.0
	craftMinY, craftMaxY = -0.5, 0.5
	craftMinZ, craftMaxZ = -0.5, 0.5
)

// SteerCraft 推进飞行器一个 tick
//
// 有手动输入时按输入方向匀速移动；否则在启用自动驾驶且有目标时
// 在 Y/Z 平面上向目标靠拢。过场期间由过场状态机驱动，不调用本函数。
func SteerCraft(craft *components.Craft, input components.Vec3, target *components.Enemy) {
	switch {
	case input != (components.Vec3{}):
		craft.Velocity = input.Normalize().Scale(craftSpeed)
	case craft.Autopilot && target != nil:
		craft.Velocity = components.Vec3{
			Y: clampAbs((target.Position.Y-craft.Position.Y)*autopilotGain, autopilotLimit),
			Z: clampAbs((target.Position.Z-craft.Position.Z)*autopilotGain, autopilotLimit),
		}
	default:
		craft.Velocity = components.Vec3{}
	}

	p := craft.Position.Add(craft.Velocity)
	craft.Position = components.Vec3{
		X: clamp(p.X, craftMinX, craftMaxX),
		Y: clamp(p.Y, craftMinY, craftMaxY),
		Z: clamp(p.Z, craftMinZ, craftMaxZ),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampAbs(v, limit float64) float64 {
	return clamp(v, -limit, limit)
}
