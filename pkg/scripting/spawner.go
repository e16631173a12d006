// Package scripting 用 Lua 脚本描述关卡的敌人生成
//
// 脚本需要定义全局函数 spawn(tick)，返回一个由生成请求组成的数组：
//
//	function spawn(tick)
//	  if tick % 120 ~= 0 then return {} end
//	  return { { kind = "drone", x = 2.5, y = random(-0.3, 0.5), speed = 0.004, hp = 10, money = 5 } }
//	end
//
// random([lo, hi]) 使用按关卡种子初始化的独立随机数源，不受其他脚本影响。
//
// 每个 VM 只在游戏循环的 goroutine 上使用。
package scripting

import (
	"fmt"
	"math/rand/v2"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/systems"
	"github.com/gonewx/acg/pkg/types"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// 生成请求缺省值
const (
	defaultX      = 2.5
	defaultRadius = 0.05
	defaultHP     = 10
)

// ScriptSpawner 调用 Lua spawn(tick) 的生成策略，实现 systems.Spawner
type ScriptSpawner struct {
	vm    *lua.LState
	rng   *rand.Rand
	name  string
	log   *zap.Logger
	fails int
}

// NewScriptSpawner 加载脚本源码
// seed 用于初始化脚本内的 random()
func NewScriptSpawner(name string, source []byte, seed int64, log *zap.Logger) (*ScriptSpawner, error) {
	vm := lua.NewState()
	s := &ScriptSpawner{
		vm:   vm,
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		name: name,
		log:  log,
	}
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("STAGE_SEED", lua.LNumber(seed))
	vm.SetGlobal("random", vm.NewFunction(s.luaRandom))

	if err := vm.DoString(string(source)); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if vm.GetGlobal("spawn").Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("load %s: spawn(tick) is not defined", name)
	}

	log.Debug("loaded lua script", zap.String("file", name))
	return s, nil
}

// luaRandom random() 返回 [0, 1)，random(lo, hi) 返回 [lo, hi)
func (s *ScriptSpawner) luaRandom(L *lua.LState) int {
	r := s.rng.Float64()
	if L.GetTop() >= 2 {
		lo, hi := float64(L.CheckNumber(1)), float64(L.CheckNumber(2))
		r = lo + r*(hi-lo)
	}
	L.Push(lua.LNumber(r))
	return 1
}

// Close 关闭 VM
func (s *ScriptSpawner) Close() {
	s.vm.Close()
}

// Failures 返回脚本出错的 tick 数
func (s *ScriptSpawner) Failures() int {
	return s.fails
}

// Spawn 实现 systems.Spawner
// 脚本出错时记录日志并跳过本 tick，单个非法请求只跳过该请求
func (s *ScriptSpawner) Spawn(tick int64, pool systems.SpawnTarget) {
	if err := s.vm.CallByParam(lua.P{
		Fn:      s.vm.GetGlobal("spawn"),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(tick)); err != nil {
		s.fails++
		s.log.Error("lua spawn error", zap.String("script", s.name), zap.Int64("tick", tick), zap.Error(err))
		return
	}

	result := s.vm.Get(-1)
	s.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		if result != lua.LNil {
			s.log.Warn("lua spawn returned non-table", zap.String("script", s.name), zap.String("type", result.Type().String()))
		}
		return
	}

	rt.ForEach(func(_, v lua.LValue) {
		row, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		e, err := enemyFrom(row)
		if err != nil {
			s.log.Warn("invalid spawn request", zap.String("script", s.name), zap.Int64("tick", tick), zap.Error(err))
			return
		}
		pool.Acquire(e)
	})
}

// enemyFrom 把一个生成请求表转换为敌人数据
func enemyFrom(t *lua.LTable) (components.Enemy, error) {
	kind, err := types.ParseEnemyKind(lStr(t, "kind"))
	if err != nil {
		return components.Enemy{}, err
	}

	e := components.Enemy{
		Kind: kind,
		Position: components.Vec3{
			X: lNum(t, "x", defaultX),
			Y: lNum(t, "y", 0),
			Z: lNum(t, "z", 0),
		},
		Velocity: components.Vec3{
			X: lNum(t, "vx", -lNum(t, "speed", 0)),
			Y: lNum(t, "vy", 0),
			Z: lNum(t, "vz", 0),
		},
		Radius: lNum(t, "radius", defaultRadius),
		HP:     lNum(t, "hp", defaultHP),
		Money:  int(lNum(t, "money", 0)),
	}
	if e.HP <= 0 {
		return components.Enemy{}, fmt.Errorf("%s: hp must be > 0, got %v", kind, e.HP)
	}

	if items, ok := t.RawGetString("items").(*lua.LTable); ok {
		items.ForEach(func(_, v lua.LValue) {
			if str, ok := v.(lua.LString); ok {
				e.Items = append(e.Items, string(str))
			}
		})
	}
	return e, nil
}

func lNum(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}
