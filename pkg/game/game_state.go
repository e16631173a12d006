package game

import "maps"

// MaxMoney 金钱上限
const MaxMoney = 999_999_999

// Snapshot 某一时刻的会话状态（值类型）
//
// 订阅者收到的 state/prev 互不共享可变数据：
// 修改 map/切片字段时总是先复制（copy-on-write），旧快照保持不变。
type Snapshot struct {
	Stage             string         // 当前关卡 ID
	StageTransitingTo string         // 正在过场前往的关卡 ID，空字符串表示没有过场
	Transcendence     int            // 超越次数，变化时与切换关卡一样清空敌人
	Money             int            // 金钱
	Items             map[string]int // 物品 -> 数量
	KillCount         map[string]int // 敌人显示名 -> 击杀数
	Upgrades          map[string]int // 升级项（武器 ID）-> 等级
	Tutorials         []string       // 已触发的教程提示
	WeatherCountdown  int            // 天气倒计时（秒）
}

// Observer 状态变化回调，在修改后同步调用
type Observer func(state, prev Snapshot)

type subscription struct {
	id int
	fn Observer
}

// State 会话状态
//
// 显式创建并传给调度器和各系统，不是全局单例。
// 所有修改都经过 mutate，修改完成后按订阅顺序同步通知观察者。
type State struct {
	cur       Snapshot
	observers []subscription
	nextID    int
	weather   int // 天气倒计时重置值
}

// NewState 以初始快照创建会话状态
func NewState(initial Snapshot) *State {
	if initial.Items == nil {
		initial.Items = map[string]int{}
	}
	if initial.KillCount == nil {
		initial.KillCount = map[string]int{}
	}
	if initial.Upgrades == nil {
		initial.Upgrades = map[string]int{}
	}
	return &State{cur: initial, weather: initial.WeatherCountdown}
}

// Get 返回当前状态快照
func (s *State) Get() Snapshot {
	return s.cur
}

// Subscribe 注册观察者，返回取消订阅函数
func (s *State) Subscribe(fn Observer) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// mutate 在当前状态的副本上应用修改，然后通知观察者
func (s *State) mutate(fn func(next *Snapshot)) {
	prev := s.cur
	next := prev
	fn(&next)
	s.cur = next

	// 观察者可能在回调中取消订阅，遍历副本
	observers := append([]subscription(nil), s.observers...)
	for _, sub := range observers {
		sub.fn(next, prev)
	}
}

// AddMoney 增加金钱，带上限检查
func (s *State) AddMoney(amount int) {
	if amount == 0 {
		return
	}
	s.mutate(func(n *Snapshot) {
		n.Money += amount
		if n.Money > MaxMoney {
			n.Money = MaxMoney
		}
	})
}

// SpendMoney 扣除金钱，不足时返回 false 且不扣除
func (s *State) SpendMoney(amount int) bool {
	if s.cur.Money < amount {
		return false
	}
	s.mutate(func(n *Snapshot) { n.Money -= amount })
	return true
}

// AddItems 增加物品
func (s *State) AddItems(items []string) {
	if len(items) == 0 {
		return
	}
	s.mutate(func(n *Snapshot) {
		n.Items = maps.Clone(n.Items)
		for _, item := range items {
			n.Items[item]++
		}
	})
}

// IncrementKillCount 击杀数 +1
func (s *State) IncrementKillCount(name string) {
	s.mutate(func(n *Snapshot) {
		n.KillCount = maps.Clone(n.KillCount)
		n.KillCount[name]++
	})
}

// Countdown 天气倒计时 -1 秒，归零后重置
func (s *State) Countdown() {
	s.mutate(func(n *Snapshot) {
		n.WeatherCountdown--
		if n.WeatherCountdown < 0 {
			n.WeatherCountdown = s.weather
		}
	})
}

// AddTutorial 追加一条教程提示，已存在时忽略
func (s *State) AddTutorial(id string) {
	for _, t := range s.cur.Tutorials {
		if t == id {
			return
		}
	}
	s.mutate(func(n *Snapshot) {
		n.Tutorials = append(append([]string(nil), n.Tutorials...), id)
	})
}

// SetUpgrade 设置升级等级
func (s *State) SetUpgrade(id string, level int) {
	s.mutate(func(n *Snapshot) {
		n.Upgrades = maps.Clone(n.Upgrades)
		n.Upgrades[id] = level
	})
}

// SetStage 直接切换当前关卡（不播放过场），用于读档和调试
func (s *State) SetStage(id string) {
	if s.cur.Stage == id && s.cur.StageTransitingTo == "" {
		return
	}
	s.mutate(func(n *Snapshot) {
		n.Stage = id
		n.StageTransitingTo = ""
	})
}

// SetStageTransitingTo 开始前往 id 的过场
// 目标与当前关卡相同或已在前往该关卡时忽略
func (s *State) SetStageTransitingTo(id string) {
	if id == s.cur.StageTransitingTo || (id == s.cur.Stage && s.cur.StageTransitingTo == "") {
		return
	}
	s.mutate(func(n *Snapshot) { n.StageTransitingTo = id })
}

// CompleteTransition 过场结束：目标关卡成为当前关卡
// 没有过场时是空操作
func (s *State) CompleteTransition() {
	if s.cur.StageTransitingTo == "" {
		return
	}
	s.mutate(func(n *Snapshot) {
		n.Stage = n.StageTransitingTo
		n.StageTransitingTo = ""
	})
}

// Transcend 超越：计数 +1
func (s *State) Transcend() {
	s.mutate(func(n *Snapshot) { n.Transcendence++ })
}
