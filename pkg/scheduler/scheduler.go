// Package scheduler 双速率调度器
//
// 模拟以固定 tick 周期推进，渲染跟随显示刷新。每次调用 Frame 依次执行：
//
//  1. 更新阶段：执行上一渲染阶段推迟的回调，然后运行 floor(经过时间/周期) 个 tick，
//     余数留到下一帧（累加器），长期运行不漂移。
//  2. 渲染阶段：渲染前钩子，然后渲染钩子。
//
// 暂停只停止更新阶段，省电只停止渲染阶段；两个开关每帧只采样一次。
// 帧钩子（OnFrame）不受两个开关影响，每次 Frame 都在更新阶段之前调用。
// 所有工作都在调用方的 goroutine 中同步完成，没有锁。
package scheduler

import "time"

// FrameHook 渲染阶段钩子，delta 为距上一次渲染的时长
type FrameHook func(now, delta time.Duration)

// Scheduler 双速率调度器
type Scheduler struct {
	period time.Duration
	clock  Clock

	update       func(tick int64)
	frame        []FrameHook
	beforeRender []FrameHook
	render       FrameHook
	paused       func() bool
	powerSave    func() bool

	prevUpdate  time.Duration
	prevRender  time.Duration
	prevFrame   time.Duration
	updating    bool
	updateCount int64
	posted      []func()
	running     []func()
}

// New 创建调度器
// update 每个 tick 调用一次，参数为从 0 开始单调递增的 tick 序号
func New(period time.Duration, clock Clock, update func(tick int64)) *Scheduler {
	if period <= 0 {
		panic("scheduler: period must be positive")
	}
	now := clock.Now()
	return &Scheduler{
		period:     period,
		clock:      clock,
		update:     update,
		paused:     func() bool { return false },
		powerSave:  func() bool { return false },
		prevUpdate: now,
		prevRender: now,
		prevFrame:  now,
	}
}

// PeriodFromTPS 每秒 tick 数换算为 tick 周期
func PeriodFromTPS(tps int) time.Duration {
	return time.Second / time.Duration(tps)
}

// OnFrame 追加帧钩子，delta 为距上一次 Frame 的真实时长
// 暂停和省电时照常调用，用于不依赖模拟和渲染的时间推进（如音乐淡入）
func (s *Scheduler) OnFrame(fn FrameHook) {
	s.frame = append(s.frame, fn)
}

// OnBeforeRender 追加渲染前钩子，按注册顺序调用
func (s *Scheduler) OnBeforeRender(fn FrameHook) {
	s.beforeRender = append(s.beforeRender, fn)
}

// OnRender 设置渲染钩子
func (s *Scheduler) OnRender(fn FrameHook) {
	s.render = fn
}

// SetPaused 设置暂停开关的读取函数
func (s *Scheduler) SetPaused(fn func() bool) {
	s.paused = fn
}

// SetPowerSave 设置省电开关的读取函数
func (s *Scheduler) SetPowerSave(fn func() bool) {
	s.powerSave = fn
}

// Post 把回调推迟到下一个未暂停的更新阶段开头执行
// 渲染阶段产生的状态修改（如过场特效结束）通过这里回到更新阶段
func (s *Scheduler) Post(fn func()) {
	s.posted = append(s.posted, fn)
}

// Frame 以当前时钟执行一帧，返回本帧运行的 tick 数
func (s *Scheduler) Frame() int {
	return s.FrameAt(s.clock.Now())
}

// FrameAt 以给定时间执行一帧
func (s *Scheduler) FrameAt(now time.Duration) int {
	paused := s.paused()
	powerSave := s.powerSave()
	s.updating = !paused

	frameDelta := now - s.prevFrame
	s.prevFrame = now
	for _, hook := range s.frame {
		hook(now, frameDelta)
	}

	n := 0
	if paused {
		// 暂停期间不累积时间，恢复后不会补跑
		s.prevUpdate = now
	} else {
		s.drain()
		if elapsed := now - s.prevUpdate; elapsed > 0 {
			n = int(elapsed / s.period)
		}
		s.prevUpdate += time.Duration(n) * s.period
		for i := 0; i < n; i++ {
			s.update(s.updateCount)
			s.updateCount++
		}
	}

	if powerSave {
		s.prevRender = now
		return n
	}
	delta := now - s.prevRender
	s.prevRender = now
	for _, hook := range s.beforeRender {
		hook(now, delta)
	}
	if s.render != nil {
		s.render(now, delta)
	}
	return n
}

// drain 执行推迟的回调；回调中再 Post 的留到下一帧
func (s *Scheduler) drain() {
	if len(s.posted) == 0 {
		return
	}
	s.running, s.posted = s.posted, s.running[:0]
	for i, fn := range s.running {
		fn()
		s.running[i] = nil
	}
	s.running = s.running[:0]
}

// Updating 返回本帧是否执行了更新阶段（未暂停）
// 渲染钩子据此区分"更新和渲染都在运行"与只有渲染在运行
func (s *Scheduler) Updating() bool {
	return s.updating
}

// UpdateCount 返回已执行的 tick 总数
func (s *Scheduler) UpdateCount() int64 {
	return s.updateCount
}

// Residual 返回累加器中尚未消耗的时间
func (s *Scheduler) Residual(now time.Duration) time.Duration {
	return now - s.prevUpdate
}

// Period 返回 tick 周期
func (s *Scheduler) Period() time.Duration {
	return s.period
}
