package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局设置，与存档分开保存
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`  // 背景音乐音量 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"` // 背景音乐开关
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
	PowerSave    bool    `yaml:"powerSave"`    // 省电模式：渲染阶段不推进过场和相机
	ShowDebug    bool    `yaml:"showDebug"`    // 显示调试信息（FPS、池占用、丢弃的生成请求）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:  0.7,
		MusicEnabled: true,
	}
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager 设置管理器
// 负责设置的加载、保存，以及在设置变化时通知订阅者
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
	listeners    []func(GameSettings)
	log          *zap.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager, log *zap.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		log:          log,
	}
	if err := sm.Load(); err != nil {
		log.Warn("读取设置失败，使用默认设置", zap.Error(err))
	}
	return sm
}

// Load 从 gdata 加载设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)

	sm.settings = loaded
	return nil
}

// Save 保存设置，降级模式下不报错
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 返回当前设置的副本
func (sm *SettingsManager) GetSettings() GameSettings {
	return *sm.settings
}

// Subscribe 注册设置变化回调
func (sm *SettingsManager) Subscribe(fn func(GameSettings)) {
	sm.listeners = append(sm.listeners, fn)
}

// Update 修改设置并通知订阅者
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) Update(fn func(s *GameSettings)) {
	next := *sm.settings
	fn(&next)
	next.MusicVolume = clampVolume(next.MusicVolume)
	if next == *sm.settings {
		return
	}
	sm.settings = &next
	for _, l := range sm.listeners {
		l(next)
	}
}

// clampVolume 将音量限制在 0.0 ~ 1.0
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
