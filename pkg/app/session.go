package app

import (
	"fmt"

	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/embedded"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/scripting"
	"github.com/gonewx/acg/pkg/systems"
	"go.uber.org/zap"
)

// 嵌入内容路径
const (
	gameConfigPath   = "data/game.yaml"
	stageCatalogPath = "data/stages.yaml"
	weaponConfigPath = "data/weapons.yaml"
)

// laserUpgrade 商店里唯一可购买的升级项
const laserUpgrade = "beam_laser"

// Content 启动时加载的全部配置
type Content struct {
	Game    *config.GameConfig
	Catalog *config.StageCatalog
	Weapons *config.WeaponConfigs
}

// LoadContent 从嵌入资源加载配置
func LoadContent() (*Content, error) {
	data, err := embedded.ReadFile(gameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gameConfigPath, err)
	}
	gameCfg, err := config.ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gameConfigPath, err)
	}

	data, err = embedded.ReadFile(stageCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", stageCatalogPath, err)
	}
	catalog, err := config.ParseStageCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stageCatalogPath, err)
	}

	data, err = embedded.ReadFile(weaponConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", weaponConfigPath, err)
	}
	weaponCfgs, err := config.ParseWeaponConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", weaponConfigPath, err)
	}

	if catalog.Index(gameCfg.StartStage) < 0 {
		return nil, fmt.Errorf("start stage %q is not in the catalog", gameCfg.StartStage)
	}
	return &Content{Game: gameCfg, Catalog: catalog, Weapons: weaponCfgs}, nil
}

// initialSnapshot 决定会话的初始状态
// 优先级：命令行指定的关卡 > 存档 > 配置的起始关卡。存档中的关卡已不在目录里时丢弃关卡字段。
func initialSnapshot(save *game.SaveData, stage string, c *Content) game.Snapshot {
	snap := game.Snapshot{Stage: c.Game.StartStage, WeatherCountdown: c.Game.WeatherCountdown}
	if save != nil {
		snap = save.Snapshot(c.Game.WeatherCountdown)
		if c.Catalog.Index(snap.Stage) < 0 {
			snap.Stage = c.Game.StartStage
		}
	}
	if stage != "" && c.Catalog.Index(stage) >= 0 {
		snap.Stage = stage
	}
	return snap
}

// stageStep 返回目录中相邻的关卡 ID，越界时返回 false
func stageStep(catalog *config.StageCatalog, current string, delta int) (string, bool) {
	i := catalog.Index(current)
	if i < 0 {
		return "", false
	}
	j := i + delta
	if j < 0 || j >= len(catalog.Stages) {
		return "", false
	}
	return catalog.Stages[j].ID, true
}

// upgradeCost 升到下一级的价格
func upgradeCost(level int) int {
	next := level + 1
	return 100 * next * next
}

// SpawnerFactory 按关卡配置选择生成策略，并负责关闭 Lua VM
type SpawnerFactory struct {
	log     *zap.Logger
	scripts []*scripting.ScriptSpawner
}

// NewSpawnerFactory 创建生成策略工厂
func NewSpawnerFactory(log *zap.Logger) *SpawnerFactory {
	return &SpawnerFactory{log: log}
}

// New 实现 systems.SpawnerFactory
func (f *SpawnerFactory) New(stage *config.StageConfig) (systems.Spawner, error) {
	if stage.Script == "" {
		s, err := systems.NewTableSpawner(stage)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	src, err := embedded.ReadFile(stage.Script)
	if err != nil {
		return nil, fmt.Errorf("stage %s: failed to read script: %w", stage.ID, err)
	}
	s, err := scripting.NewScriptSpawner(stage.Script, src, stage.Seed, f.log)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", stage.ID, err)
	}
	f.scripts = append(f.scripts, s)
	return s, nil
}

// Close 关闭所有脚本 VM
func (f *SpawnerFactory) Close() {
	for _, s := range f.scripts {
		s.Close()
	}
	f.scripts = nil
}
