package systems

import (
	"testing"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/ecs"
)

// recordingTarget 记录生成请求，可模拟池满
type recordingTarget struct {
	enemies []components.Enemy
	full    bool
}

func (r *recordingTarget) Acquire(e components.Enemy) (ecs.Handle, bool) {
	if r.full {
		return 0, false
	}
	r.enemies = append(r.enemies, e)
	return ecs.Handle(len(r.enemies)), true
}

func waveStage() *config.StageConfig {
	return &config.StageConfig{
		ID:   "sky",
		Seed: 42,
		Waves: []config.WaveConfig{
			{Enemy: "drone", Start: 10, Interval: 5, Count: 3, X: 2.5, YMin: -0.3, YMax: 0.3, Speed: 0.01, HP: 2, Radius: 0.05, Money: 5},
			{Enemy: "balloon", Start: 0, Interval: 100, X: 2.5, HP: 4, Items: []string{"crystal"}},
		},
	}
}

func TestTableSpawnerSchedule(t *testing.T) {
	s, err := NewTableSpawner(waveStage())
	if err != nil {
		t.Fatalf("NewTableSpawner() error: %v", err)
	}

	target := &recordingTarget{}
	for tick := int64(0); tick < 200; tick++ {
		s.Spawn(tick, target)
	}

	// drone: 10, 15, 20；balloon: 0, 100（不限次数）
	drones, balloons := 0, 0
	for _, e := range target.enemies {
		switch e.Kind.String() {
		case "Drone":
			drones++
			if e.Velocity.X != -0.01 || e.Money != 5 {
				t.Errorf("unexpected drone %+v", e)
			}
			if e.Position.Y < -0.3 || e.Position.Y > 0.3 {
				t.Errorf("drone y %v outside wave range", e.Position.Y)
			}
		case "Balloon":
			balloons++
		}
	}
	if drones != 3 || balloons != 2 {
		t.Errorf("drones=%d balloons=%d, want 3 and 2", drones, balloons)
	}
}

func TestTableSpawnerDeterministic(t *testing.T) {
	run := func() []components.Enemy {
		s, _ := NewTableSpawner(waveStage())
		target := &recordingTarget{}
		for tick := int64(0); tick < 30; tick++ {
			s.Spawn(tick, target)
		}
		return target.enemies
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("different spawn counts %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Errorf("spawn %d differs: %+v vs %+v", i, a[i].Position, b[i].Position)
		}
	}
}

func TestTableSpawnerFullPoolIsSilent(t *testing.T) {
	s, _ := NewTableSpawner(waveStage())
	target := &recordingTarget{full: true}
	// 池满不应 panic，也不返回错误
	for tick := int64(0); tick < 20; tick++ {
		s.Spawn(tick, target)
	}
	if len(target.enemies) != 0 {
		t.Errorf("full pool accepted %d enemies", len(target.enemies))
	}
}

func TestTableSpawnerCopiesItems(t *testing.T) {
	stage := waveStage()
	s, _ := NewTableSpawner(stage)
	target := &recordingTarget{}
	s.Spawn(0, target)

	target.enemies[0].Items[0] = "changed"
	if stage.Waves[1].Items[0] != "crystal" {
		t.Error("spawned enemy must not alias wave config items")
	}
}

func TestNewTableSpawnerRejectsUnknownEnemy(t *testing.T) {
	_, err := NewTableSpawner(&config.StageConfig{ID: "x", Waves: []config.WaveConfig{{Enemy: "zombie", Interval: 1, HP: 1}}})
	if err == nil {
		t.Error("expected error for unknown enemy kind")
	}
}
