// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerState 当前帧的指针状态
// 同时支持鼠标和触摸，优先使用触摸
type PointerState struct {
	// Pressed 是否有按下的手指或鼠标左键
	Pressed bool
	// X, Y 指针位置（逻辑屏幕坐标）
	X, Y int
	// IsTouch 是否来自触摸
	IsTouch bool
}

// GetPointerState 获取当前帧的指针状态
func GetPointerState() PointerState {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{Pressed: true, X: x, Y: y, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
	}
}

// PointerDirection 把相对屏幕中心的指针位置转换为方向 (dx, dy)，Y 轴向上
// 落在中心 deadZone 像素以内时返回 (0, 0)
func PointerDirection(x, y, width, height int, deadZone float64) (dx, dy float64) {
	fx := float64(x - width/2)
	fy := float64(height/2 - y)
	if fx*fx+fy*fy <= deadZone*deadZone {
		return 0, 0
	}
	return fx, fy
}
