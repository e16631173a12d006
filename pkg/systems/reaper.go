package systems

import (
	"math/rand/v2"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/weapons"
)

// Reaper 回收阶段，每个 tick 在伤害结算之后运行一次
//
//  1. 存活敌人中 HP <= 0 的：OnKilled → 击杀数/金钱/物品入账 → 转入死亡可见阶段；
//     飞出屏幕左侧的：直接回收，无奖励。两种情况都通知监听移除的武器。
//  2. 其余存活敌人 Time++。
//  3. 死亡可见敌人坠落并随机旋转，Time > DeadLifetimeTicks 后回收。
//
// 每一步都先对句柄做快照再修改池；每次访问都重新 Get，
// 已回收的句柄因代数不匹配而被跳过。
type Reaper struct {
	state     *game.State
	listeners []weapons.RemovalListener
	rng       *rand.Rand
	effects   *ParticleSystem

	buf []ecs.Handle
}

// NewReaper 创建回收器
// listeners 在创建时确定；effects 可为 nil
func NewReaper(state *game.State, listeners []weapons.RemovalListener, rng *rand.Rand, effects *ParticleSystem) *Reaper {
	return &Reaper{
		state:     state,
		listeners: listeners,
		rng:       rng,
		effects:   effects,
	}
}

// Reap 对一个关卡池执行三步回收
func (r *Reaper) Reap(pool *StagePool) {
	r.buf = pool.SnapshotAlive(r.buf)

	for _, h := range r.buf {
		e, ok := pool.Get(h)
		if !ok || e.Phase != components.EnemyAlive {
			continue
		}
		switch {
		case e.Dead():
			r.reward(e)
			// 奖励回调可能触发观察者，重新确认句柄仍有效
			if !pool.Retire(h) {
				continue
			}
		case e.Position.X < config.OffscreenX:
			pool.Free(h)
		default:
			continue
		}
		r.notify(pool.Ref(h))
	}

	for _, h := range r.buf {
		if e, ok := pool.Get(h); ok && e.Phase == components.EnemyAlive {
			e.Time++
		}
	}

	r.buf = pool.SnapshotDead(r.buf)
	for _, h := range r.buf {
		e, ok := pool.Get(h)
		if !ok {
			continue
		}
		e.Position.Y -= config.DeadFallRate * float64(e.Time)
		e.Rotation.Z += config.DeadSpin * (r.rng.Float64() - 0.5)
		e.Time++
		if e.Time > config.DeadLifetimeTicks {
			pool.Free(h)
		}
	}
}

// reward 击杀结算，OnKilled 先于读取奖励
func (r *Reaper) reward(e *components.Enemy) {
	BehaviorFor(e.Kind).OnKilled(e)

	r.state.IncrementKillCount(e.Kind.String())
	r.state.AddMoney(e.Money)
	r.state.AddItems(e.Items)

	if r.effects != nil {
		r.effects.Burst(e.Position)
	}
}

func (r *Reaper) notify(ref components.EnemyRef) {
	for _, l := range r.listeners {
		l.OnEnemyRemoved(ref)
	}
}
