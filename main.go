package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/acg/pkg/app"
	"github.com/gonewx/acg/pkg/config"
	"github.com/gonewx/acg/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	stage   = flag.String("stage", "", "起始关卡 ID（如 storm），为空则读取存档")
	tps     = flag.Int("tps", 0, "每秒模拟 tick 数，0 表示使用 data/game.yaml")
)

func main() {
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{Stage: *stage, TPS: *tps}, log)
	if err != nil {
		log.Fatal("游戏初始化失败", zap.Error(err))
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("ACG")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil && !app.IsTermination(err) {
		log.Fatal("游戏异常退出", zap.Error(err))
	}
	gameApp.Close()
}

// newLogger 创建控制台日志：verbose 时输出 Debug 级别
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
