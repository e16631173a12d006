package types

import "testing"

func TestParseEnemyKind(t *testing.T) {
	tests := []struct {
		id      string
		want    EnemyKind
		wantErr bool
	}{
		{"drone", EnemyDrone, false},
		{"weather_ufo", EnemyWeatherUFO, false},
		{"mothership_core", EnemyMothershipCore, false},
		{"zombie", EnemyUnknown, true},
		{"", EnemyUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseEnemyKind(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEnemyKind(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseEnemyKind(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestEnemyKindTargetable(t *testing.T) {
	if EnemyWeatherUFO.Targetable() {
		t.Error("weather UFO must not be targetable")
	}
	if !EnemyDrone.Targetable() {
		t.Error("drone should be targetable")
	}
	if EnemyWeatherUFO.String() != "Weather Effect UFO" {
		t.Errorf("unexpected display name %q", EnemyWeatherUFO.String())
	}
}
