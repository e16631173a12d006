package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 武器类型
const (
	WeaponTypeGun     = "gun"     // 直射子弹
	WeaponTypeLaser   = "laser"   // 持续光束
	WeaponTypeMissile = "missile" // 追踪导弹
)

// WeaponConfig 武器配置
type WeaponConfig struct {
	ID             string  `yaml:"id"`             // 武器 ID，同时是升级项名称
	Type           string  `yaml:"type"`           // gun / laser / missile
	Damage         float64 `yaml:"damage"`         // 基础伤害（光束为每 tick 伤害）
	DamagePerLevel float64 `yaml:"damagePerLevel"` // 每级升级追加伤害
	MinLevel       int     `yaml:"minLevel"`       // 需要的升级等级，0 表示初始可用
	Interval       int     `yaml:"interval"`       // 发射间隔（tick）
	Speed          float64 `yaml:"speed"`          // 弹体速度（每 tick）
	Radius         float64 `yaml:"radius"`         // 弹体半径 / 光束半高
	Lifetime       int     `yaml:"lifetime"`       // 弹体寿命（tick）
	Capacity       int     `yaml:"capacity"`       // 弹体子池容量
	Length         float64 `yaml:"length"`         // 光束长度
	Turn           float64 `yaml:"turn"`           // 导弹每 tick 转向比例（0~1）
}

// WeaponConfigs 武器配置列表
type WeaponConfigs struct {
	Weapons []WeaponConfig `yaml:"weapons"`
}

// LoadWeaponConfigs 从 YAML 文件加载武器配置
func LoadWeaponConfigs(path string) (*WeaponConfigs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weapon config %s: %w", path, err)
	}
	cfgs, err := ParseWeaponConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfgs, nil
}

// ParseWeaponConfigs 解析武器配置 YAML
func ParseWeaponConfigs(data []byte) (*WeaponConfigs, error) {
	var cfgs WeaponConfigs
	if err := yaml.Unmarshal(data, &cfgs); err != nil {
		return nil, fmt.Errorf("failed to parse weapon config YAML: %w", err)
	}
	for i := range cfgs.Weapons {
		if err := validateWeaponConfig(&cfgs.Weapons[i]); err != nil {
			return nil, fmt.Errorf("invalid weapon %d: %w", i, err)
		}
	}
	return &cfgs, nil
}

func validateWeaponConfig(w *WeaponConfig) error {
	if w.ID == "" {
		return fmt.Errorf("id is required")
	}
	switch w.Type {
	case WeaponTypeGun, WeaponTypeMissile:
		if w.Capacity <= 0 {
			return fmt.Errorf("%s: capacity must be > 0, got %d", w.ID, w.Capacity)
		}
		if w.Interval <= 0 {
			return fmt.Errorf("%s: interval must be > 0, got %d", w.ID, w.Interval)
		}
		if w.Lifetime <= 0 {
			return fmt.Errorf("%s: lifetime must be > 0, got %d", w.ID, w.Lifetime)
		}
	case WeaponTypeLaser:
		if w.Length <= 0 {
			return fmt.Errorf("%s: length must be > 0, got %v", w.ID, w.Length)
		}
	default:
		return fmt.Errorf("%s: unknown weapon type %q", w.ID, w.Type)
	}
	if w.Damage < 0 {
		return fmt.Errorf("%s: damage must be >= 0, got %v", w.ID, w.Damage)
	}
	return nil
}
