package config

import (
	"strings"
	"testing"
)

func TestParseWeaponConfigs(t *testing.T) {
	valid := `
weapons:
  - id: gun
    type: gun
    damage: 1
    damagePerLevel: 0.5
    interval: 8
    speed: 0.05
    radius: 0.03
    lifetime: 80
    capacity: 32
  - id: laser
    type: laser
    damage: 0.05
    radius: 0.02
    length: 3
    minLevel: 1
`
	cfgs, err := ParseWeaponConfigs([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfgs.Weapons) != 2 {
		t.Fatalf("expected 2 weapons, got %d", len(cfgs.Weapons))
	}
	if cfgs.Weapons[0].DamagePerLevel != 0.5 {
		t.Errorf("expected damagePerLevel 0.5, got %v", cfgs.Weapons[0].DamagePerLevel)
	}
	if cfgs.Weapons[1].MinLevel != 1 {
		t.Errorf("expected laser minLevel 1, got %d", cfgs.Weapons[1].MinLevel)
	}

	invalid := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{"missing id", "weapons:\n  - type: gun\n", "id is required"},
		{"unknown type", "weapons:\n  - id: x\n    type: sword\n", "unknown weapon type"},
		{"gun without capacity", "weapons:\n  - id: g\n    type: gun\n    interval: 1\n    lifetime: 1\n", "capacity must be > 0"},
		{"laser without length", "weapons:\n  - id: l\n    type: laser\n", "length must be > 0"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeaponConfigs([]byte(tt.yamlContent))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err, tt.errContains)
			}
		})
	}
}
