package game

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"
)

// SampleRate 音频上下文采样率
const SampleRate = 44100

// AudioManager 背景音乐管理器
//
// 只有一首循环播放的 BGM，开始播放后在 fadeIn 时间内从静音线性淡入到设置音量。
// 音量和开关跟随 SettingsManager 变化。
type AudioManager struct {
	ctx      *audio.Context
	player   *audio.Player
	settings *SettingsManager
	log      *zap.Logger

	fadeIn  time.Duration
	elapsed time.Duration
	paused  bool
}

// NewAudioManager 创建音频管理器
// ctx 为 nil 时（无音频设备、测试）所有操作都是空操作
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, fadeIn time.Duration, log *zap.Logger) *AudioManager {
	am := &AudioManager{
		ctx:      ctx,
		settings: sm,
		fadeIn:   fadeIn,
		log:      log,
	}
	if sm != nil {
		sm.Subscribe(func(GameSettings) { am.applyVolume() })
	}
	return am
}

// LoadBGM 解码 BGM 并创建循环播放器，支持 .mp3 和 .wav
func (am *AudioManager) LoadBGM(name string, data []byte) error {
	if am.ctx == nil {
		return nil
	}

	var (
		stream io.ReadSeeker
		length int64
	)
	switch path.Ext(name) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode mp3 %s: %w", name, err)
		}
		stream, length = s, s.Length()
	case ".wav":
		s, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode wav %s: %w", name, err)
		}
		stream, length = s, s.Length()
	default:
		return fmt.Errorf("unsupported audio format: %s", name)
	}

	player, err := am.ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}

	if am.player != nil {
		am.player.Close()
	}
	am.player = player
	am.elapsed = 0
	am.log.Debug("BGM 已加载", zap.String("name", name))
	return nil
}

// Play 从静音开始播放 BGM
func (am *AudioManager) Play() {
	if am.player == nil {
		return
	}
	am.elapsed = 0
	am.paused = false
	am.applyVolume()
	am.player.Play()
}

// SetPaused 暂停或恢复 BGM，暂停期间淡入不推进
func (am *AudioManager) SetPaused(paused bool) {
	if am.player == nil || am.paused == paused {
		return
	}
	am.paused = paused
	if paused {
		am.player.Pause()
		return
	}
	am.applyVolume()
	am.player.Play()
}

// Update 推进淡入，dt 为距上次调用的真实时间
// 淡入只受暂停影响，与渲染无关
func (am *AudioManager) Update(dt time.Duration) {
	if am.paused || am.elapsed >= am.fadeIn {
		return
	}
	am.elapsed += dt
	am.applyVolume()
}

// Volume 返回当前实际音量
func (am *AudioManager) Volume() float64 {
	volume, enabled := 0.7, true
	if am.settings != nil {
		s := am.settings.GetSettings()
		volume, enabled = s.MusicVolume, s.MusicEnabled
	}
	if !enabled {
		return 0
	}
	return volume * fadeInGain(am.elapsed, am.fadeIn)
}

func (am *AudioManager) applyVolume() {
	if am.player == nil {
		return
	}
	am.player.SetVolume(am.Volume())
}

// Close 释放播放器
func (am *AudioManager) Close() {
	if am.player != nil {
		am.player.Close()
		am.player = nil
	}
}

// fadeInGain 线性淡入增益 [0, 1]
func fadeInGain(elapsed, duration time.Duration) float64 {
	if duration <= 0 || elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(duration)
}
