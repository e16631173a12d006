package systems

import (
	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/weapons"
)

// CollectTargets 收集所有关卡池中的存活敌人，写入 dst[:0]
// 返回的指针只在本 tick 有效
func CollectTargets(stages []*Stage, dst []components.Target) []components.Target {
	dst = dst[:0]
	for _, s := range stages {
		for h, e := range s.Pool.Alive() {
			dst = append(dst, components.Target{Ref: s.Pool.Ref(h), Enemy: e})
		}
	}
	return dst
}

// ApplyDamage 让每个武器对完整的存活敌人列表结算一次伤害
//
// 伤害直接从 HP 扣除，多个武器在同一 tick 的伤害累加，不做下限截断。
// 武器不回收敌人：HP <= 0 的敌人留给本 tick 随后的回收阶段处理。
func ApplyDamage(ws []weapons.Weapon, alive []components.Target) {
	if len(alive) == 0 {
		return
	}
	for _, w := range ws {
		w.DoDamage(alive)
	}
}
