// Package app 提供游戏应用的核心包装器
//
// 该包把配置、会话状态、模拟世界、调度器、渲染和音频组装成一个 ebiten.Game，
// 使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/embedded"
	"github.com/gonewx/acg/pkg/game"
	"github.com/gonewx/acg/pkg/render"
	"github.com/gonewx/acg/pkg/scheduler"
	"github.com/gonewx/acg/pkg/systems"
	"github.com/gonewx/acg/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// AppName gdata 存储使用的应用名
const AppName = "acg"

// tutorialSeconds 教程提示显示时长
const tutorialSeconds = 8

// Config 定义应用启动配置
type Config struct {
	// Stage 指定起始关卡 ID，为空则从存档加载或使用 game.yaml 的 startStage
	Stage string
	// TPS 覆盖 game.yaml 中的每秒 tick 数，0 表示不覆盖
	TPS int
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	content   *Content
	log       *zap.Logger
	state     *game.State
	world     *systems.World
	scheduler *scheduler.Scheduler
	spawners  *SpawnerFactory

	renderer *render.Renderer
	effect   *render.TransitionEffect
	hud      render.HUD
	visibles []components.Visible

	saves    *game.SaveManager
	settings *game.SettingsManager
	audio    *game.AudioManager

	input         components.Vec3
	paused        bool
	autosaveTicks int64
	tutorialTick  int64
	closed        bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config, log *zap.Logger) (*App, error) {
	c, err := LoadContent()
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if cfg.TPS > 0 {
		c.Game.TicksPerSecond = cfg.TPS
	}

	// 存储打不开时以降级模式运行（不存档）
	storage, err := game.OpenStorage(AppName)
	if err != nil {
		log.Warn("存储不可用，进度不会保存", zap.Error(err))
	}

	a := &App{
		content:       c,
		log:           log,
		saves:         game.NewSaveManager(storage, log),
		settings:      game.NewSettingsManager(storage, log),
		spawners:      NewSpawnerFactory(log),
		hud:           render.NewHUD(language.English),
		autosaveTicks: int64(c.Game.AutosaveSeconds * c.Game.TicksPerSecond),
	}

	save, err := a.saves.Load()
	if err != nil {
		log.Warn("读取存档失败，开始新游戏", zap.Error(err))
		save = nil
	}
	a.state = game.NewState(initialSnapshot(save, cfg.Stage, c))
	a.state.Subscribe(a.onStateChange)

	a.effect = render.NewTransitionEffect(c.Game.TransitionFrames)
	a.scheduler = scheduler.New(
		scheduler.PeriodFromTPS(c.Game.TicksPerSecond),
		scheduler.NewMonotonicClock(),
		a.tick,
	)

	a.world, err = systems.NewWorld(systems.WorldOptions{
		Game:     c.Game,
		Catalog:  c.Catalog,
		Weapons:  c.Weapons.Weapons,
		State:    a.state,
		Effect:   a.effect,
		Poster:   a.scheduler,
		Spawners: a.spawners.New,
		Log:      log,
	})
	if err != nil {
		a.spawners.Close()
		return nil, fmt.Errorf("世界创建失败: %w", err)
	}

	stageColors := make(map[string]string, len(c.Catalog.Stages))
	for _, s := range c.Catalog.Stages {
		stageColors[s.Name] = s.Color
	}
	a.renderer, err = render.NewRenderer(config.GameWindowWidth, config.GameWindowHeight, stageColors, a.effect)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("渲染器创建失败: %w", err)
	}

	a.initAudio()
	configureFrameLoop()

	a.scheduler.SetPaused(func() bool { return a.paused })
	a.scheduler.SetPowerSave(func() bool { return a.settings.GetSettings().PowerSave })
	// 音乐淡入按真实时间推进，省电模式下也不停
	a.scheduler.OnFrame(func(_, delta time.Duration) {
		a.audio.Update(delta)
	})
	a.scheduler.OnBeforeRender(func(time.Duration, time.Duration) {
		if a.scheduler.Updating() {
			a.world.FollowCamera()
		}
		a.effect.Advance()
	})
	a.scheduler.OnRender(func(time.Duration, time.Duration) {
		a.prepareFrame()
	})

	if utils.IsMobile() {
		a.state.AddTutorial("touch")
	} else {
		a.state.AddTutorial("wasd")
	}
	log.Info("游戏已启动",
		zap.String("stage", a.state.Get().Stage),
		zap.Int("tps", c.Game.TicksPerSecond),
		zap.Bool("fromSave", save != nil))
	return a, nil
}

// configureFrameLoop 设置 ebiten 帧循环，桌面端和移动端共用
func configureFrameLoop() {
	// Update 每个显示帧调用一次，模拟 tick 由调度器按真实时间推进
	ebiten.SetTPS(ebiten.SyncWithFPS)
	// 省电模式下不重绘，保留上一帧画面
	ebiten.SetScreenClearedEveryFrame(false)
}

// initAudio 加载并开始播放 BGM，失败时静音运行
func (a *App) initAudio() {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(game.SampleRate)
	}
	fadeIn := time.Duration(a.content.Game.BGMFadeInSeconds * float64(time.Second))
	a.audio = game.NewAudioManager(ctx, a.settings, fadeIn, a.log)

	path := a.content.Game.BGMPath
	if path == "" {
		return
	}
	data, err := embedded.ReadFile(path)
	if err != nil {
		a.log.Warn("BGM 读取失败", zap.String("path", path), zap.Error(err))
		return
	}
	if err := a.audio.LoadBGM(path, data); err != nil {
		a.log.Warn("BGM 加载失败", zap.String("path", path), zap.Error(err))
		return
	}
	a.audio.Play()
}

// tick 调度器的更新回调
func (a *App) tick(tick int64) {
	a.world.Tick(tick)
	if a.autosaveTicks > 0 && tick > 0 && tick%a.autosaveTicks == 0 {
		a.save()
	}
}

func (a *App) onStateChange(state, prev game.Snapshot) {
	if a.scheduler != nil && len(state.Tutorials) != len(prev.Tutorials) {
		a.tutorialTick = a.scheduler.UpdateCount()
	}
}

// Update 处理输入并驱动调度器
// ebiten 以 SyncWithFPS 调用，每个显示帧一次；模拟 tick 数由调度器按真实时间决定
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.input = readInput()
	a.handleKeys()
	a.world.SetInput(a.input)
	a.scheduler.Frame()
	return nil
}

// handleKeys 处理单次按键
func (a *App) handleKeys() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.paused = !a.paused
		a.audio.SetPaused(a.paused)
		a.log.Debug("暂停切换", zap.Bool("paused", a.paused))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.settings.Update(func(s *game.GameSettings) { s.PowerSave = !s.PowerSave })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.settings.Update(func(s *game.GameSettings) { s.ShowDebug = !s.ShowDebug })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.settings.Update(func(s *game.GameSettings) { s.MusicEnabled = !s.MusicEnabled })
	}
	if a.paused {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.world.Craft.Autopilot = !a.world.Craft.Autopilot
		a.state.AddTutorial("stage")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		a.stepStage(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		a.stepStage(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.state.Transcend()
		a.state.AddTutorial("upgrade")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		a.buyUpgrade()
	}
	if a.input != (components.Vec3{}) {
		a.state.AddTutorial("autopilot")
	}
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.Update(func(s *game.GameSettings) { s.Fullscreen = fullscreen })
}

// stepStage 开始前往相邻关卡的过场，过场中忽略
func (a *App) stepStage(delta int) {
	if a.world.Transition.State().Transitioning {
		return
	}
	next, ok := stageStep(a.content.Catalog, a.state.Get().Stage, delta)
	if !ok {
		return
	}
	a.state.SetStageTransitingTo(next)
}

// buyUpgrade 花钱把光束升一级
func (a *App) buyUpgrade() {
	level := a.state.Get().Upgrades[laserUpgrade]
	cost := upgradeCost(level)
	if !a.state.SpendMoney(cost) {
		a.log.Debug("金钱不足", zap.Int("cost", cost))
		return
	}
	a.state.SetUpgrade(laserUpgrade, level+1)
	a.log.Info("升级已购买", zap.String("upgrade", laserUpgrade), zap.Int("level", level+1))
}

// prepareFrame 渲染阶段：采集快照交给渲染器
func (a *App) prepareFrame() {
	a.visibles = a.world.Visibles(a.visibles)
	snap := a.state.Get()

	hud := a.hud
	hud.Stage = a.stageName(snap.Stage)
	hud.Money = snap.Money
	hud.Weather = snap.WeatherCountdown
	hud.Autopilot = a.world.Craft.Autopilot
	hud.Paused = a.paused
	hud.FPS = ebiten.ActualFPS()
	hud.TPS = float64(time.Second) / float64(a.scheduler.Period())
	for _, n := range snap.KillCount {
		hud.Kills += n
	}
	tps := int64(a.content.Game.TicksPerSecond)
	if n := len(snap.Tutorials); n > 0 && a.scheduler.UpdateCount()-a.tutorialTick < tutorialSeconds*tps {
		hud.Tutorial = snap.Tutorials[n-1]
	}
	if a.settings.GetSettings().ShowDebug {
		st := a.world.Stats()
		hud.Debug = fmt.Sprintf("tick %d  alive %d  dying %d  dropped %d  particles %d  %s",
			a.scheduler.UpdateCount(), st.Alive, st.Dead, st.Dropped, st.Particles, a.world.Transition.State())
	}

	a.renderer.Prepare(a.visibles, *a.world.Camera, hud)
}

func (a *App) stageName(id string) string {
	if s, ok := a.content.Catalog.Get(id); ok {
		return s.Name
	}
	return id
}

// save 写入会话存档，失败只记录日志
func (a *App) save() {
	if err := a.saves.Save(game.SaveDataFrom(a.state.Get())); err != nil {
		a.log.Warn("存档失败", zap.Error(err))
	}
}

// Close 保存进度和设置并释放资源，可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	a.save()
	if err := a.settings.Save(); err != nil {
		a.log.Warn("设置保存失败", zap.Error(err))
	}
	if a.audio != nil {
		a.audio.Close()
	}
	a.world.Close()
	a.spawners.Close()
	a.log.Info("游戏已退出", zap.Int64("ticks", a.scheduler.UpdateCount()))
}

// Draw 绘制游戏画面
// 没有新快照（省电模式）时保留上一帧，需配合 SetScreenClearedEveryFrame(false)
func (a *App) Draw(screen *ebiten.Image) {
	if !a.renderer.Dirty() {
		return
	}
	a.renderer.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Fullscreen 返回设置中保存的全屏偏好
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// IsTermination 判断 RunGame 返回的错误是否为正常退出
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
