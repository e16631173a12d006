package config

import (
	"fmt"
	"os"

	"github.com/gonewx/acg/pkg/types"
	"gopkg.in/yaml.v3"
)

// StageCatalog 关卡目录
// 列表顺序即目录索引，过场方向由索引大小决定
type StageCatalog struct {
	Stages []StageConfig `yaml:"stages"`
}

// StageConfig 单个关卡配置
type StageConfig struct {
	ID      string       `yaml:"id"`      // 关卡 ID，如 "sky"
	Name    string       `yaml:"name"`    // 显示名，如 "Mothership"
	LookAtX float64      `yaml:"lookAtX"` // 镜头注视点 X
	Color   string       `yaml:"color"`   // 关卡背景色（#rrggbb）
	Script  string       `yaml:"script"`  // Lua 生成脚本路径，非空时忽略 waves
	Seed    int64        `yaml:"seed"`    // 生成器随机数种子
	Waves   []WaveConfig `yaml:"waves"`   // 表驱动的敌人波次
}

// WaveConfig 按 tick 周期生成的一组敌人
type WaveConfig struct {
	Enemy    string   `yaml:"enemy"`    // 敌人 ID，如 "drone"
	Start    int64    `yaml:"start"`    // 首次生成的 tick
	Interval int64    `yaml:"interval"` // 生成间隔（tick）
	Count    int      `yaml:"count"`    // 生成次数，0 表示不限
	X        float64  `yaml:"x"`        // 出生 X
	YMin     float64  `yaml:"yMin"`     // 出生 Y 下限
	YMax     float64  `yaml:"yMax"`     // 出生 Y 上限
	ZMin     float64  `yaml:"zMin"`     // 出生 Z 下限
	ZMax     float64  `yaml:"zMax"`     // 出生 Z 上限
	Speed    float64  `yaml:"speed"`    // 向左飞行速度（每 tick）
	HP       float64  `yaml:"hp"`       // 初始生命值
	Radius   float64  `yaml:"radius"`   // 命中半径
	Money    int      `yaml:"money"`    // 击杀奖励金钱
	Items    []string `yaml:"items"`    // 击杀掉落物品
}

// Index 返回关卡在目录中的索引，不存在时返回 -1
func (c *StageCatalog) Index(id string) int {
	for i := range c.Stages {
		if c.Stages[i].ID == id {
			return i
		}
	}
	return -1
}

// Get 按 ID 查找关卡
func (c *StageCatalog) Get(id string) (*StageConfig, bool) {
	i := c.Index(id)
	if i < 0 {
		return nil, false
	}
	return &c.Stages[i], true
}

// LoadStageCatalog 从 YAML 文件加载关卡目录
func LoadStageCatalog(path string) (*StageCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage catalog %s: %w", path, err)
	}
	catalog, err := ParseStageCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// ParseStageCatalog 解析关卡目录 YAML
func ParseStageCatalog(data []byte) (*StageCatalog, error) {
	var catalog StageCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse stage catalog YAML: %w", err)
	}
	for i := range catalog.Stages {
		applyWaveDefaults(&catalog.Stages[i])
	}
	if err := validateStageCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid stage catalog: %w", err)
	}
	return &catalog, nil
}

func applyWaveDefaults(stage *StageConfig) {
	if stage.Name == "" {
		stage.Name = stage.ID
	}
	for i := range stage.Waves {
		w := &stage.Waves[i]
		if w.X == 0 {
			w.X = 2.5
		}
		if w.YMax < w.YMin {
			w.YMax = w.YMin
		}
		if w.ZMax < w.ZMin {
			w.ZMax = w.ZMin
		}
		if w.Radius == 0 {
			w.Radius = 0.05
		}
	}
}

func validateStageCatalog(catalog *StageCatalog) error {
	if len(catalog.Stages) == 0 {
		return fmt.Errorf("at least one stage is required")
	}

	seen := make(map[string]bool, len(catalog.Stages))
	for i, stage := range catalog.Stages {
		if stage.ID == "" {
			return fmt.Errorf("stage %d: id is required", i)
		}
		if seen[stage.ID] {
			return fmt.Errorf("duplicate stage id %q", stage.ID)
		}
		seen[stage.ID] = true

		for j, wave := range stage.Waves {
			if _, err := types.ParseEnemyKind(wave.Enemy); err != nil {
				return fmt.Errorf("stage %s wave %d: %w", stage.ID, j, err)
			}
			if wave.Interval <= 0 {
				return fmt.Errorf("stage %s wave %d: interval must be > 0, got %d", stage.ID, j, wave.Interval)
			}
			if wave.HP <= 0 {
				return fmt.Errorf("stage %s wave %d: hp must be > 0, got %v", stage.ID, j, wave.HP)
			}
			if wave.Start < 0 {
				return fmt.Errorf("stage %s wave %d: start must be >= 0, got %d", stage.ID, j, wave.Start)
			}
		}
	}
	return nil
}
