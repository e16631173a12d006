// Package types 定义共享的基础类型
package types

import "fmt"

// EnemyKind 敌人分类
// 分类决定敌人的行为（移动、被击杀时的效果）和是否可被自动驾驶锁定
type EnemyKind int

const (
	// EnemyUnknown 未知分类
	EnemyUnknown EnemyKind = iota

	EnemyDrone          // 无人机：匀速直线飞行
	EnemyBalloon        // 气球：正弦上下浮动
	EnemyJet            // 喷气机：加速俯冲
	EnemyBonusShip      // 奖励飞船：限时击杀奖励翻倍
	EnemyWeatherUFO     // 天气效果 UFO：悬停，不可被自动驾驶锁定
	EnemyMothershipCore // 母舰核心
)

// enemyNames 分类 -> 显示名（击杀统计按显示名计数）
var enemyNames = map[EnemyKind]string{
	EnemyDrone:          "Drone",
	EnemyBalloon:        "Balloon",
	EnemyJet:            "Jet",
	EnemyBonusShip:      "Bonus Ship",
	EnemyWeatherUFO:     "Weather Effect UFO",
	EnemyMothershipCore: "Mothership Core",
}

// enemyIDs 配置文件使用的 ID -> 分类
var enemyIDs = map[string]EnemyKind{
	"drone":           EnemyDrone,
	"balloon":         EnemyBalloon,
	"jet":             EnemyJet,
	"bonus_ship":      EnemyBonusShip,
	"weather_ufo":     EnemyWeatherUFO,
	"mothership_core": EnemyMothershipCore,
}

// String 返回敌人显示名
func (k EnemyKind) String() string {
	if name, ok := enemyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Targetable 返回该分类能否被自动驾驶选为目标
func (k EnemyKind) Targetable() bool {
	return k != EnemyWeatherUFO
}

// ParseEnemyKind 解析配置文件中的敌人 ID（如 "drone"）
func ParseEnemyKind(id string) (EnemyKind, error) {
	if kind, ok := enemyIDs[id]; ok {
		return kind, nil
	}
	return EnemyUnknown, fmt.Errorf("unknown enemy kind %q", id)
}
