package app

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// pointerDeadZone 指针离画面中心小于该像素数时不移动
const pointerDeadZone = 40

// keyPressed 查询按键状态，测试中可替换
type keyPressed func(ebiten.Key) bool

// moveDirection 根据按住的方向键返回移动方向，没有输入时返回零向量
// 相反方向同时按下时互相抵消
func moveDirection(pressed keyPressed) components.Vec3 {
	var dir components.Vec3
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp) {
		dir.Y++
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown) {
		dir.Y--
	}
	if pressed(ebiten.KeyE) {
		dir.Z++
	}
	if pressed(ebiten.KeyQ) {
		dir.Z--
	}
	return dir
}

// pointerMove 按住屏幕（或鼠标左键）时朝指针方向移动
func pointerMove(p utils.PointerState) components.Vec3 {
	if !p.Pressed {
		return components.Vec3{}
	}
	dx, dy := utils.PointerDirection(p.X, p.Y, config.GameWindowWidth, config.GameWindowHeight, pointerDeadZone)
	return components.Vec3{X: dx, Y: dy}
}

// readInput 合并键盘和指针输入，键盘优先
func readInput() components.Vec3 {
	if dir := moveDirection(ebiten.IsKeyPressed); dir != (components.Vec3{}) {
		return dir
	}
	return pointerMove(utils.GetPointerState())
}
