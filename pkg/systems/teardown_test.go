package systems

import (
	"testing"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/weapons"
	"go.uber.org/zap"
)

func TestStageSwitchReset(t *testing.T) {
	tests := []struct {
		name   string
		alive  int
		dead   int
		change func(*game.State)
	}{
		{"stage change", 3, 2, func(s *game.State) { s.SetStage("rain") }},
		{"transition completes", 1, 4, func(s *game.State) {
			s.SetStageTransitingTo("rain")
			s.CompleteTransition()
		}},
		{"transcendence", 2, 0, func(s *game.State) { s.Transcend() }},
		{"empty pools", 0, 0, func(s *game.State) { s.SetStage("rain") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages := testStages(testCatalog("sky", "rain"), 16)
			state := game.NewState(game.Snapshot{Stage: "sky"})
			l1, l2 := &countingListener{}, &countingListener{}
			craft := components.NewCraft()
			td := NewTeardown(stages, []weapons.RemovalListener{l1, l2}, nil, craft, zap.NewNop())
			td.Attach(state)

			// 存活和死亡敌人分布在两个关卡池中
			for i := 0; i < tt.alive; i++ {
				mustAcquire(stages[i%2].Pool, drone(float64(i)))
			}
			for i := 0; i < tt.dead; i++ {
				stages[i%2].Pool.Retire(mustAcquire(stages[i%2].Pool, drone(float64(i))))
			}
			craft.AutopilotTarget = components.EnemyRef{Stage: 0, ID: 1}

			tt.change(state)

			for _, s := range stages {
				if alive, dead := s.Pool.Counts(); alive != 0 || dead != 0 {
					t.Errorf("stage %s: %d alive, %d dead after reset", s.Config.ID, alive, dead)
				}
			}
			want := tt.alive + tt.dead
			if len(l1.removed) != want || len(l2.removed) != want {
				t.Errorf("listeners notified %d/%d times, want %d", len(l1.removed), len(l2.removed), want)
			}
			if !craft.AutopilotTarget.IsZero() {
				t.Error("autopilot target should be cleared")
			}
		})
	}
}

func TestTeardownIgnoresOtherChanges(t *testing.T) {
	stages := testStages(testCatalog("sky", "rain"), 4)
	state := game.NewState(game.Snapshot{Stage: "sky"})
	l := &countingListener{}
	NewTeardown(stages, []weapons.RemovalListener{l}, nil, components.NewCraft(), zap.NewNop()).Attach(state)

	mustAcquire(stages[0].Pool, drone(1))
	state.AddMoney(10)
	state.SetStageTransitingTo("rain")

	if alive, _ := stages[0].Pool.Counts(); alive != 1 {
		t.Error("money and transition start must not clear the pools")
	}
	if len(l.removed) != 0 {
		t.Errorf("unexpected notifications %v", l.removed)
	}
}

func TestTeardownStageVisibility(t *testing.T) {
	stages := testStages(testCatalog("sky", "rain"), 1)
	state := game.NewState(game.Snapshot{Stage: "sky"})
	NewTeardown(stages, nil, nil, components.NewCraft(), zap.NewNop()).Attach(state)

	if !stages[0].Model.Visible || stages[1].Model.Visible {
		t.Fatal("current stage model should be visible after Attach")
	}
	state.SetStage("rain")
	if stages[0].Model.Visible || !stages[1].Model.Visible {
		t.Error("visibility should follow the current stage")
	}
}
