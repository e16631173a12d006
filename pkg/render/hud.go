package render

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD 左上角的状态文字
// ebitenutil 的调试字体只有 ASCII，显示文字保持英文
type HUD struct {
	Stage     string
	Money     int
	Kills     int
	Weather   int
	Tutorial  string
	Autopilot bool
	Paused    bool
	FPS       float64
	TPS       float64
	// Debug 非空时显示在状态文字下方
	Debug string

	printer *message.Printer
}

// tutorialTexts 教程 ID 到提示文字
var tutorialTexts = map[string]string{
	"wasd":      "WASD / arrows to fly, Q/E for depth. Let go and the autopilot takes over",
	"touch":     "Touch and hold to fly, release for autopilot",
	"autopilot": "Tab toggles the autopilot",
	"stage":     "[ and ] change stage, T transcends",
	"upgrade":   "U buys a beam laser upgrade",
}

// NewHUD 创建按 tag 格式化数字的 HUD
func NewHUD(tag language.Tag) HUD {
	return HUD{printer: message.NewPrinter(tag)}
}

// Lines 返回要显示的文字行
func (h HUD) Lines() []string {
	p := h.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}

	lines := []string{
		p.Sprintf("Stage %s", h.Stage),
		p.Sprintf("Money %d  Kills %d", h.Money, h.Kills),
		p.Sprintf("Weather %ds", h.Weather),
		p.Sprintf("FPS %.0f  TPS %.0f", h.FPS, h.TPS),
	}
	if h.Autopilot {
		lines = append(lines, "AUTOPILOT")
	}
	if h.Paused {
		lines = append(lines, "PAUSED (F3)")
	}
	if text, ok := tutorialTexts[h.Tutorial]; ok {
		lines = append(lines, text)
	}
	if h.Debug != "" {
		lines = append(lines, h.Debug)
	}
	return lines
}

// Draw 画出 HUD
func (h HUD) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, strings.Join(h.Lines(), "\n"), 8, 8)
}
