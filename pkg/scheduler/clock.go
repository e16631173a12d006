package scheduler

import "time"

// Clock 单调时钟，返回自某个固定起点以来的时长
type Clock interface {
	Now() time.Duration
}

// MonotonicClock 基于 time.Since 的真实时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 以当前时刻为起点创建时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now 实现 Clock
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock 手动推进的时钟，用于测试和回放
type ManualClock struct {
	now time.Duration
}

// Now 实现 Clock
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance 时钟前进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d
}

// Set 设置当前时间
func (c *ManualClock) Set(now time.Duration) {
	c.now = now
}
