package game

import (
	"testing"

	"go.uber.org/zap"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.MusicVolume != 0.7 {
		t.Errorf("MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
	if !settings.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if settings.PowerSave || settings.Fullscreen {
		t.Error("PowerSave and Fullscreen should default to false")
	}
}

func TestSettingsUpdateNotifies(t *testing.T) {
	sm := NewSettingsManager(nil, zap.NewNop())

	var got []GameSettings
	sm.Subscribe(func(s GameSettings) { got = append(got, s) })

	sm.Update(func(s *GameSettings) { s.MusicVolume = 1.5 })
	sm.Update(func(s *GameSettings) { s.MusicVolume = 1.0 }) // 与当前值相同，不通知

	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].MusicVolume != 1.0 {
		t.Errorf("volume should be clamped to 1.0, got %v", got[0].MusicVolume)
	}
}

func TestSettingsPersist(t *testing.T) {
	manager := createTestGdataManager(t, "settings")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	sm := NewSettingsManager(manager, zap.NewNop())
	sm.Update(func(s *GameSettings) {
		s.PowerSave = true
		s.MusicVolume = 0.25
	})
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(manager, zap.NewNop())
	s := reloaded.GetSettings()
	if !s.PowerSave || s.MusicVolume != 0.25 {
		t.Errorf("settings not persisted: %+v", s)
	}
}
