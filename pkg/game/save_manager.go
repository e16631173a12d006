package game

import (
	"fmt"
	"maps"

	"github.com/gonewx/acg/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SaveData 会话进度存档
//
// 只保存会话状态，不保存对象池和调度器内部状态：
// 读档后敌人从空池重新生成。
type SaveData struct {
	Stage         string         `yaml:"stage"`
	Transcendence int            `yaml:"transcendence"`
	Money         int            `yaml:"money"`
	Items         map[string]int `yaml:"items"`
	KillCount     map[string]int `yaml:"killCount"`
	Upgrades      map[string]int `yaml:"upgrades"`
	Tutorials     []string       `yaml:"tutorials"`
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "session"
)

// SaveManager 存档管理器
//
// 数据通过 gdata 跨平台存储（桌面为用户数据目录，移动端为应用沙盒）。
// gdataManager 为 nil 时进入降级模式：Load 返回空存档，Save 不报错。
type SaveManager struct {
	gdataManager *gdata.Manager
	log          *zap.Logger
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - log: 日志
func NewSaveManager(gdataManager *gdata.Manager, log *zap.Logger) *SaveManager {
	return &SaveManager{gdataManager: gdataManager, log: log}
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil 和错误，调用方可以继续以降级模式运行
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, err
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage %s: %w", appName, err)
	}
	return m, nil
}

// HasSave 返回是否存在存档
func (sm *SaveManager) HasSave() bool {
	if sm.gdataManager == nil {
		return false
	}
	return sm.gdataManager.ObjectPropExists(progressObject, progressProperty)
}

// Load 读取存档，不存在时返回 (nil, nil)
func (sm *SaveManager) Load() (*SaveData, error) {
	if !sm.HasSave() {
		return nil, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load save data: %w", err)
	}

	var save SaveData
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save data: %w", err)
	}
	return &save, nil
}

// Save 写入存档
func (sm *SaveManager) Save(save *SaveData) error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	sm.log.Debug("存档已保存", zap.String("stage", save.Stage), zap.Int("money", save.Money))
	return nil
}

// SaveDataFrom 从会话快照生成存档
// 进行中的过场按已到达目标关卡保存
func SaveDataFrom(s Snapshot) *SaveData {
	stage := s.Stage
	if s.StageTransitingTo != "" {
		stage = s.StageTransitingTo
	}
	return &SaveData{
		Stage:         stage,
		Transcendence: s.Transcendence,
		Money:         s.Money,
		Items:         maps.Clone(s.Items),
		KillCount:     maps.Clone(s.KillCount),
		Upgrades:      maps.Clone(s.Upgrades),
		Tutorials:     append([]string(nil), s.Tutorials...),
	}
}

// Snapshot 把存档还原为会话快照
func (d *SaveData) Snapshot(weatherCountdown int) Snapshot {
	return Snapshot{
		Stage:            d.Stage,
		Transcendence:    d.Transcendence,
		Money:            d.Money,
		Items:            maps.Clone(d.Items),
		KillCount:        maps.Clone(d.KillCount),
		Upgrades:         maps.Clone(d.Upgrades),
		Tutorials:        append([]string(nil), d.Tutorials...),
		WeatherCountdown: weatherCountdown,
	}
}
