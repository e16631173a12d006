package systems

import (
	"testing"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/types"
)

func TestSelectTargetNearestQualifying(t *testing.T) {
	stages := testStages(testCatalog("sky"), 4)
	pool := stages[0].Pool

	mustAcquire(pool, drone(0.5))
	mustAcquire(pool, drone(1.2))
	want := mustAcquire(pool, drone(0.9))

	ref := SelectTarget(components.Vec3{X: 0.4}, pool, 0.3)
	if ref.ID != want {
		e, _ := pool.Get(ref.ID)
		t.Errorf("selected %+v, want the enemy at x=0.9", e)
	}
}

func TestSelectTargetSkipsNonTargetable(t *testing.T) {
	stages := testStages(testCatalog("sky"), 4)
	pool := stages[0].Pool

	ufo := drone(0.8)
	ufo.Kind = types.EnemyWeatherUFO
	mustAcquire(pool, ufo)

	if ref := SelectTarget(components.Vec3{}, pool, 0.3); !ref.IsZero() {
		t.Error("weather UFO must never be selected")
	}

	want := mustAcquire(pool, drone(1.5))
	if ref := SelectTarget(components.Vec3{}, pool, 0.3); ref.ID != want {
		t.Error("expected the drone behind the UFO")
	}
}

func TestSelectTargetStableTieBreak(t *testing.T) {
	stages := testStages(testCatalog("sky"), 4)
	pool := stages[0].Pool

	first := mustAcquire(pool, drone(1))
	mustAcquire(pool, drone(1))

	if ref := SelectTarget(components.Vec3{}, pool, 0.3); ref.ID != first {
		t.Error("tie should keep the first minimal enemy encountered")
	}
}

func TestAutopilotRetainsAndRecomputes(t *testing.T) {
	stages := testStages(testCatalog("sky"), 4)
	pool := stages[0].Pool
	craft := components.NewCraft()
	ap := NewAutopilot(0.3)

	far := mustAcquire(pool, drone(1.5))
	ap.Update(craft, stages, 0)
	if craft.AutopilotTarget.ID != far {
		t.Fatal("expected the only enemy as target")
	}

	// 更近的敌人出现时保留现有目标（仍存活且在前方）
	near := mustAcquire(pool, drone(0.5))
	ap.Update(craft, stages, 0)
	if craft.AutopilotTarget.ID != far {
		t.Error("valid target should be retained")
	}

	// 目标被回收后句柄失效，重新选择
	pool.Free(far)
	ap.Update(craft, stages, 0)
	if craft.AutopilotTarget.ID != near {
		t.Error("freed target should be replaced")
	}

	// 目标落到飞行器后方
	e, _ := pool.Get(near)
	e.Position.X = -0.1
	ap.Update(craft, stages, 0)
	if !craft.AutopilotTarget.IsZero() {
		t.Error("no enemy qualifies, target should be absent")
	}
}

func TestAutopilotDropsDeadTarget(t *testing.T) {
	stages := testStages(testCatalog("sky"), 2)
	pool := stages[0].Pool
	craft := components.NewCraft()
	ap := NewAutopilot(0.3)

	h := mustAcquire(pool, drone(1))
	ap.Update(craft, stages, 0)
	pool.Retire(h)
	ap.Update(craft, stages, 0)

	if !craft.AutopilotTarget.IsZero() {
		t.Error("dying enemy should not stay targeted")
	}
}

func TestAutopilotOtherStageTarget(t *testing.T) {
	stages := testStages(testCatalog("sky", "rain"), 2)
	craft := components.NewCraft()
	ap := NewAutopilot(0.3)

	h := mustAcquire(stages[0].Pool, drone(1))
	craft.AutopilotTarget = stages[0].Pool.Ref(h)
	ap.Update(craft, stages, 1)

	if !craft.AutopilotTarget.IsZero() {
		t.Error("target outside the current stage should be dropped")
	}
}
