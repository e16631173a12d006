// simulate 无窗口运行模拟核心，用于检查关卡内容和调度器行为
//
// 用法：
//
//	go run ./cmd/simulate -stage storm -seconds 120 -switch 30
//
// 时钟由程序推进（每帧 -frame 毫秒），结果与机器速度无关。
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gonewx/acg/pkg/app"
	"github.com/gonewx/acg/pkg/embedded"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/render"
	"github.com/gonewx/acg/pkg/scheduler"
	"github.com/gonewx/acg/pkg/systems"
	"go.uber.org/zap"
)

var (
	root    = flag.String("root", ".", "项目根目录（包含 data/ 和 assets/）")
	stage   = flag.String("stage", "", "起始关卡 ID，为空使用 data/game.yaml 的 startStage")
	seconds = flag.Int("seconds", 60, "模拟的真实时间（秒）")
	frameMs = flag.Int("frame", 16, "每帧毫秒数")
	switchS = flag.Int("switch", 0, "每隔多少秒切换到下一关，0 表示不切换")
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	log := zap.NewExample()
	if !*verbose {
		log = log.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	defer log.Sync()

	fsys := os.DirFS(*root)
	embedded.Init(fsys, fsys)

	content, err := app.LoadContent()
	if err != nil {
		log.Fatal("配置加载失败", zap.Error(err))
	}

	start := content.Game.StartStage
	if *stage != "" {
		start = *stage
	}
	state := game.NewState(game.Snapshot{Stage: start, WeatherCountdown: content.Game.WeatherCountdown})

	clock := &scheduler.ManualClock{}
	effect := render.NewTransitionEffect(content.Game.TransitionFrames)
	spawners := app.NewSpawnerFactory(log)
	defer spawners.Close()

	var world *systems.World
	sched := scheduler.New(scheduler.PeriodFromTPS(content.Game.TicksPerSecond), clock, func(tick int64) {
		world.Tick(tick)
	})

	world, err = systems.NewWorld(systems.WorldOptions{
		Game:     content.Game,
		Catalog:  content.Catalog,
		Weapons:  content.Weapons.Weapons,
		State:    state,
		Effect:   effect,
		Poster:   sched,
		Spawners: spawners.New,
		Log:      log,
	})
	if err != nil {
		log.Fatal("世界创建失败", zap.Error(err))
	}
	defer world.Close()

	frames := 0
	sched.OnBeforeRender(func(time.Duration, time.Duration) {
		world.FollowCamera()
		effect.Advance()
	})
	sched.OnRender(func(time.Duration, time.Duration) {
		frames++
	})

	frame := time.Duration(*frameMs) * time.Millisecond
	end := time.Duration(*seconds) * time.Second
	every := time.Duration(*switchS) * time.Second
	next := every

	for clock.Now() < end {
		clock.Advance(frame)
		sched.Frame()

		if every > 0 && clock.Now() >= next {
			next += every
			i := content.Catalog.Index(state.Get().Stage)
			to := content.Catalog.Stages[(i+1)%len(content.Catalog.Stages)].ID
			state.SetStageTransitingTo(to)
			log.Debug("切换关卡", zap.String("to", to), zap.Duration("at", clock.Now()))
		}
	}

	snap := state.Get()
	kills := 0
	for _, n := range snap.KillCount {
		kills += n
	}
	st := world.Stats()
	log.Info("模拟结束",
		zap.Int64("ticks", sched.UpdateCount()),
		zap.Int("frames", frames),
		zap.String("stage", snap.Stage),
		zap.Int("money", snap.Money),
		zap.Int("kills", kills),
		zap.Any("items", snap.Items),
		zap.Int("alive", st.Alive),
		zap.Int("dying", st.Dead),
		zap.Int("dropped", st.Dropped))
}
