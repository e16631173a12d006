// Package render 是模拟核心的渲染协作方：用 ebiten 画出可见对象快照
//
// 场景坐标 X 向前（屏幕右方）、Y 向上、Z 为纵深；
// 镜头注视点位于画面中心，纵深越远物体越小。
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gonewx/acg/pkg/components"
	"github.com/gonewx/acg/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pixelsPerUnit 场景单位到像素的缩放
const pixelsPerUnit = 320.0

var (
	colorCraft      = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	colorEnemy      = color.RGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
	colorUntargeted = color.RGBA{R: 0xab, G: 0x47, B: 0xbc, A: 0xff}
	colorDying      = color.NRGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xc0}
	colorProjectile = color.RGBA{R: 0xff, G: 0xee, B: 0x58, A: 0xff}
	colorBeam       = color.NRGBA{R: 0xff, G: 0x40, B: 0x81, A: 0xd0}
	colorParticle   = color.RGBA{R: 0xff, G: 0xa7, B: 0x26, A: 0xff}
	colorBackground = color.RGBA{R: 0x10, G: 0x14, B: 0x24, A: 0xff}
)

// Renderer ebiten 渲染器
//
// Prepare 在调度器的渲染阶段复制一份快照，Draw 在 ebiten 的 Draw 回调中画出快照。
// 省电模式下不会调用 Prepare，画面保持上一帧。
type Renderer struct {
	width, height int
	stageColors   map[string]color.RGBA

	visibles []components.Visible
	camera   components.Camera
	hud      HUD
	effect   *TransitionEffect
	dirty    bool
}

// NewRenderer 创建渲染器
// stageColors 为关卡显示名到背景色（#rrggbb）的映射
func NewRenderer(width, height int, stageColors map[string]string, effect *TransitionEffect) (*Renderer, error) {
	r := &Renderer{
		width:       width,
		height:      height,
		stageColors: make(map[string]color.RGBA, len(stageColors)),
		effect:      effect,
	}
	for name, hex := range stageColors {
		if hex == "" {
			continue
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		r.stageColors[name] = c
	}
	return r, nil
}

// Prepare 复制本帧要画的快照
func (r *Renderer) Prepare(visibles []components.Visible, camera components.Camera, hud HUD) {
	r.visibles = append(r.visibles[:0], visibles...)
	r.camera = camera
	r.hud = hud
	r.dirty = true
}

// Dirty 返回自上次 Draw 以来是否有新快照
func (r *Renderer) Dirty() bool {
	return r.dirty
}

// Draw 画出最近一次 Prepare 的快照
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.dirty = false
	screen.Fill(r.background())

	for _, v := range r.visibles {
		if !v.Visible {
			continue
		}
		r.drawVisible(screen, v)
	}

	if a := r.effect.Alpha(); a > 0 {
		v := uint8(a * 0xff)
		vector.DrawFilledRect(screen, 0, 0, float32(r.width), float32(r.height), color.RGBA{R: v, G: v, B: v, A: v}, false)
	}

	r.hud.Draw(screen)
}

func (r *Renderer) background() color.Color {
	for _, v := range r.visibles {
		if v.Kind == components.VisibleStageModel && v.Visible {
			if c, ok := r.stageColors[v.Label]; ok {
				return c
			}
		}
	}
	return colorBackground
}

func (r *Renderer) drawVisible(screen *ebiten.Image, v components.Visible) {
	x, y, scale := r.Project(v.Position)
	radius := float32(v.Radius * pixelsPerUnit * scale)

	switch v.Kind {
	case components.VisibleCraft:
		vector.DrawFilledCircle(screen, x, y, radius, colorCraft, true)
		// 机头方向
		vector.StrokeLine(screen, x, y, x+radius*2, y-float32(v.Rotation.Y*pixelsPerUnit*10), 2, colorCraft, true)
	case components.VisibleEnemy:
		c := colorEnemy
		if v.Label == types.EnemyWeatherUFO.String() {
			c = colorUntargeted
		}
		vector.DrawFilledCircle(screen, x, y, radius, c, true)
		drawSpoke(screen, x, y, radius, v.Rotation.Z+v.Rotation.Y)
	case components.VisibleDyingEnemy:
		vector.DrawFilledCircle(screen, x, y, radius, colorDying, true)
		drawSpoke(screen, x, y, radius, v.Rotation.Z)
	case components.VisibleProjectile:
		vector.DrawFilledCircle(screen, x, y, max(radius, 2), colorProjectile, true)
	case components.VisibleBeam:
		ex, ey, _ := r.Project(v.Position.Add(components.Vec3{X: v.Length}))
		vector.StrokeLine(screen, x, y, ex, ey, max(radius*2, 2), colorBeam, true)
	case components.VisibleParticle:
		s := max(radius, 1.5)
		vector.DrawFilledRect(screen, x-s/2, y-s/2, s, s, colorParticle, false)
	}
}

// drawSpoke 画一条表示旋转角度的半径线
func drawSpoke(screen *ebiten.Image, x, y, radius float32, angle float64) {
	dx := radius * float32(math.Cos(angle))
	dy := radius * float32(math.Sin(angle))
	vector.StrokeLine(screen, x, y, x+dx, y-dy, 1, color.Black, true)
}

// Project 场景坐标投影到屏幕像素，返回屏幕坐标和纵深缩放
// 镜头偏航使画面水平平移，翻滚使画面绕中心旋转
func (r *Renderer) Project(p components.Vec3) (x, y float32, scale float64) {
	cam := r.camera
	depth := p.Z - cam.Position.Z
	scale = 1 / (1 + 0.5*depth)
	scale = math.Min(math.Max(scale, 0.5), 2)

	dx := (p.X - cam.LookAt.X) * scale
	dy := (p.Y - cam.LookAt.Y) * scale
	dx -= cam.Rotation.Y

	sin, cos := math.Sincos(cam.Rotation.Z)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	ry += cam.Rotation.X

	x = float32(float64(r.width)/2 + rx*pixelsPerUnit)
	y = float32(float64(r.height)/2 - ry*pixelsPerUnit)
	return x, y, scale
}

// ParseHexColor 解析 #rrggbb
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
