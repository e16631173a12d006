package app

import (
	"os"
	"testing"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/embedded"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// 测试直接读取项目根目录下的 data/ 和 assets/
func initRepoFS(t *testing.T) {
	t.Helper()
	root := os.DirFS("../..")
	embedded.Init(root, root)
}

func testContent() *Content {
	return &Content{
		Game:    &config.GameConfig{StartStage: "sky", WeatherCountdown: 60},
		Catalog: &config.StageCatalog{Stages: []config.StageConfig{
			{ID: "sky"}, {ID: "storm"}, {ID: "mothership"},
		}},
	}
}

func TestLoadContent(t *testing.T) {
	initRepoFS(t)

	c, err := LoadContent()
	if err != nil {
		t.Fatalf("LoadContent() error: %v", err)
	}
	if c.Catalog.Index(c.Game.StartStage) < 0 {
		t.Errorf("start stage %q missing from catalog", c.Game.StartStage)
	}
	if len(c.Weapons.Weapons) == 0 {
		t.Error("expected at least one weapon")
	}

	found := false
	for _, w := range c.Weapons.Weapons {
		if w.ID == laserUpgrade {
			found = true
		}
	}
	if !found {
		t.Errorf("weapon %q is sold in the shop but not configured", laserUpgrade)
	}
	if c.Game.BGMPath != "" && !embedded.Exists(c.Game.BGMPath) {
		t.Errorf("BGM %s not found", c.Game.BGMPath)
	}
}

func TestSpawnerFactory_AllStages(t *testing.T) {
	initRepoFS(t)

	c, err := LoadContent()
	if err != nil {
		t.Fatalf("LoadContent() error: %v", err)
	}

	f := NewSpawnerFactory(zap.NewNop())
	defer f.Close()

	scripted := 0
	for i := range c.Catalog.Stages {
		stage := &c.Catalog.Stages[i]
		if stage.Script != "" {
			scripted++
		}
		if _, err := f.New(stage); err != nil {
			t.Errorf("stage %s: %v", stage.ID, err)
		}
	}
	if len(f.scripts) != scripted {
		t.Errorf("factory tracks %d scripts, want %d", len(f.scripts), scripted)
	}
}

func TestInitialSnapshot(t *testing.T) {
	c := testContent()

	tests := []struct {
		name      string
		save      *game.SaveData
		stage     string
		wantStage string
		wantMoney int
	}{
		{"new game", nil, "", "sky", 0},
		{"from save", &game.SaveData{Stage: "storm", Money: 40}, "", "storm", 40},
		{"flag overrides save", &game.SaveData{Stage: "storm", Money: 40}, "mothership", "mothership", 40},
		{"unknown flag ignored", nil, "moon", "sky", 0},
		{"stale save stage", &game.SaveData{Stage: "removed", Money: 7}, "", "sky", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := initialSnapshot(tt.save, tt.stage, c)
			if snap.Stage != tt.wantStage {
				t.Errorf("stage = %q, want %q", snap.Stage, tt.wantStage)
			}
			if snap.Money != tt.wantMoney {
				t.Errorf("money = %d, want %d", snap.Money, tt.wantMoney)
			}
			if snap.WeatherCountdown != 60 {
				t.Errorf("weather countdown = %d, want 60", snap.WeatherCountdown)
			}
		})
	}
}

func TestStageStep(t *testing.T) {
	catalog := testContent().Catalog

	tests := []struct {
		current string
		delta   int
		want    string
		wantOK  bool
	}{
		{"sky", 1, "storm", true},
		{"storm", -1, "sky", true},
		{"sky", -1, "", false},
		{"mothership", 1, "", false},
		{"missing", 1, "", false},
	}
	for _, tt := range tests {
		got, ok := stageStep(catalog, tt.current, tt.delta)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("stageStep(%q, %d) = (%q, %v), want (%q, %v)", tt.current, tt.delta, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestUpgradeCost(t *testing.T) {
	if upgradeCost(0) != 100 || upgradeCost(1) != 400 || upgradeCost(2) != 900 {
		t.Errorf("unexpected costs %d %d %d", upgradeCost(0), upgradeCost(1), upgradeCost(2))
	}
}

func TestMoveDirection(t *testing.T) {
	keys := func(down ...ebiten.Key) keyPressed {
		return func(k ebiten.Key) bool {
			for _, d := range down {
				if d == k {
					return true
				}
			}
			return false
		}
	}

	tests := []struct {
		name string
		keys keyPressed
		want components.Vec3
	}{
		{"none", keys(), components.Vec3{}},
		{"up", keys(ebiten.KeyW), components.Vec3{Y: 1}},
		{"arrow down left", keys(ebiten.KeyArrowDown, ebiten.KeyArrowLeft), components.Vec3{X: -1, Y: -1}},
		{"opposite cancel", keys(ebiten.KeyA, ebiten.KeyD), components.Vec3{}},
		{"depth", keys(ebiten.KeyQ), components.Vec3{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moveDirection(tt.keys); got != tt.want {
				t.Errorf("moveDirection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPointerMove(t *testing.T) {
	tests := []struct {
		name string
		p    utils.PointerState
		want components.Vec3
	}{
		{"released", utils.PointerState{X: 900, Y: 10}, components.Vec3{}},
		{"dead zone", utils.PointerState{Pressed: true, X: 481, Y: 271, IsTouch: true}, components.Vec3{}},
		{"upper right", utils.PointerState{Pressed: true, X: 580, Y: 170, IsTouch: true}, components.Vec3{X: 100, Y: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointerMove(tt.p); got != tt.want {
				t.Errorf("pointerMove() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfigureFrameLoop(t *testing.T) {
	configureFrameLoop()
	if got := ebiten.TPS(); got != ebiten.SyncWithFPS {
		t.Errorf("TPS = %d, want SyncWithFPS", got)
	}
	if ebiten.IsScreenClearedEveryFrame() {
		t.Error("screen must keep the previous frame between draws")
	}
}
