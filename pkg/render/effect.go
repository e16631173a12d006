package render

import "github.com/gonewx/acg/pkg/utils"

// TransitionEffect 过场特效：画面淡出到白色，结束后再淡入
//
// Play 在更新阶段调用，Advance 在渲染阶段每帧调用一次。
// 淡出结束时调用 onDone（调用方负责把它推迟回更新阶段）。
type TransitionEffect struct {
	frames int
	frame  int
	// fadingIn 淡出结束后的淡入阶段，不影响 onDone
	fadingIn bool
	onDone   func()
}

// NewTransitionEffect 创建持续 frames 帧的过场特效
func NewTransitionEffect(frames int) *TransitionEffect {
	if frames < 1 {
		frames = 1
	}
	return &TransitionEffect{frames: frames}
}

// Play 开始淡出，播放中重复调用是空操作
func (e *TransitionEffect) Play(onDone func()) {
	if e.onDone != nil {
		return
	}
	e.onDone = onDone
	e.frame = 0
	e.fadingIn = false
}

// Playing 返回是否正在淡出
func (e *TransitionEffect) Playing() bool {
	return e.onDone != nil
}

// Advance 推进一帧
func (e *TransitionEffect) Advance() {
	switch {
	case e.onDone != nil:
		e.frame++
		if e.frame >= e.frames {
			done := e.onDone
			e.onDone = nil
			e.fadingIn = true
			e.frame = e.frames
			done()
		}
	case e.fadingIn:
		e.frame--
		if e.frame <= 0 {
			e.fadingIn = false
			e.frame = 0
		}
	}
}

// Alpha 返回白色遮罩的不透明度 [0, 1]
func (e *TransitionEffect) Alpha() float64 {
	if e.onDone == nil && !e.fadingIn {
		return 0
	}
	return utils.EaseInOutCubic(float64(e.frame) / float64(e.frames))
}
