package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 模拟常量
// 坐标为场景单位：飞行器初始位于原点，屏幕左边缘约为 X=-1
const (
	// OffscreenX 敌人 X 小于该值视为飞出屏幕左侧，直接回收且无奖励
	// 只检查左边界：敌人总是从右向左飞离画面
	OffscreenX = -1.0

	// DeadFallRate 死亡坠落速度系数，每 tick Y -= DeadFallRate * Time
	DeadFallRate = 0.001

	// DeadSpin 死亡坠落时每 tick 随机 Z 轴旋转幅度
	DeadSpin = 0.1

	// DeadLifetimeTicks 死亡后可见的最长 tick 数，超过后回收
	DeadLifetimeTicks = 100

	// TransitionExitX 前进过场中飞行器超过该 X 时播放过场特效
	TransitionExitX = 2.0

	// TransitionBaseSpeed 前进过场每 tick 的基础位移
	TransitionBaseSpeed = 0.01

	// TransitionAcceleration 前进过场按当前 X 位置追加的位移比例
	TransitionAcceleration = 0.08

	// TransitionYaw 前进过场每 tick 镜头绕 Y 轴旋转量（弧度）
	TransitionYaw = -0.02

	// TransitionRoll 前进过场每 tick 镜头绕 Z 轴旋转量（弧度）
	TransitionRoll = 0.003

	// TransitionZoom 前进过场每 tick 镜头 Z 位移
	TransitionZoom = -0.01
)

// 窗口配置
const (
	GameWindowWidth  = 960
	GameWindowHeight = 540
)

// GameConfig 游戏运行参数
type GameConfig struct {
	TicksPerSecond   int     `yaml:"ticksPerSecond"`   // 每秒模拟 tick 数
	AutopilotMargin  float64 `yaml:"autopilotMargin"`  // 自动驾驶只选择 X > 飞行器 X + margin 的敌人
	StartStage       string  `yaml:"startStage"`       // 无存档时的起始关卡 ID
	EnemyPoolSize    int     `yaml:"enemyPoolSize"`    // 每个关卡敌人池容量
	ParticlePoolSize int     `yaml:"particlePoolSize"` // 碎片特效池容量
	WeatherCountdown int     `yaml:"weatherCountdown"` // 天气倒计时初始值（秒）
	TransitionFrames int     `yaml:"transitionFrames"` // 过场特效持续帧数
	BGMPath          string  `yaml:"bgmPath"`          // 背景音乐文件（mp3 / wav），为空则不播放
	BGMFadeInSeconds float64 `yaml:"bgmFadeInSeconds"` // 背景音乐淡入时长
	AutosaveSeconds  int     `yaml:"autosaveSeconds"`  // 自动存档间隔（秒），0 表示只在退出时保存
	RandomSeed       int64   `yaml:"randomSeed"`       // 死亡旋转等表现用随机数种子
}

// DefaultGameConfig 返回默认参数
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TicksPerSecond:   120,
		AutopilotMargin:  0.3,
		EnemyPoolSize:    64,
		ParticlePoolSize: 256,
		WeatherCountdown: 60,
		TransitionFrames: 60,
		BGMFadeInSeconds: 8,
		AutosaveSeconds:  30,
		RandomSeed:       1,
	}
}

// TickPeriodMs 返回一个 tick 的毫秒数
func (c *GameConfig) TickPeriodMs() float64 {
	return 1000 / float64(c.TicksPerSecond)
}

// LoadGameConfig 从 YAML 文件加载游戏参数
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 数据，缺失字段使用默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

func validateGameConfig(cfg *GameConfig) error {
	if cfg.TicksPerSecond <= 0 {
		return fmt.Errorf("ticksPerSecond must be > 0, got %d", cfg.TicksPerSecond)
	}
	if cfg.AutopilotMargin < 0 {
		return fmt.Errorf("autopilotMargin must be >= 0, got %v", cfg.AutopilotMargin)
	}
	if cfg.EnemyPoolSize <= 0 {
		return fmt.Errorf("enemyPoolSize must be > 0, got %d", cfg.EnemyPoolSize)
	}
	if cfg.ParticlePoolSize < 0 {
		return fmt.Errorf("particlePoolSize must be >= 0, got %d", cfg.ParticlePoolSize)
	}
	if cfg.TransitionFrames <= 0 {
		return fmt.Errorf("transitionFrames must be > 0, got %d", cfg.TransitionFrames)
	}
	return nil
}
