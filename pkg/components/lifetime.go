package components

// LifetimeComponent 以 tick 计的生命周期
// 用于自动回收存在时间超过上限的弹体和特效
type LifetimeComponent struct {
	MaxTicks     int // 最大生命周期（tick）
	CurrentTicks int // 已存在 tick 数
}

// Step 推进一个 tick，返回是否已过期
func (l *LifetimeComponent) Step() bool {
	l.CurrentTicks++
	return l.CurrentTicks >= l.MaxTicks
}

// Progress 返回已消耗的寿命比例 [0, 1]
func (l *LifetimeComponent) Progress() float64 {
	if l.MaxTicks <= 0 {
		return 1
	}
	return min(float64(l.CurrentTicks)/float64(l.MaxTicks), 1)
}
