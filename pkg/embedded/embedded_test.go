package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func initTestFS(t *testing.T) {
	t.Helper()
	Init(fstest.MapFS{
		"assets/audio/bgm.wav": {Data: []byte("RIFF")},
	}, fstest.MapFS{
		"data/game.yaml":          {Data: []byte("ticksPerSecond: 120\n")},
		"data/scripts/sky.lua":    {Data: []byte("function spawn(tick) return {} end")},
		"data/scripts/jammer.lua": {Data: []byte("function spawn(tick) return {} end")},
	})
	t.Cleanup(func() {
		assetsFS, dataFS, initialized = nil, nil, false
	})
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/game.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Open("assets/audio/bgm.wav"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/game.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	initTestFS(t)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data/game.yaml", "ticksPerSecond: 120\n", false},
		{"./data/game.yaml", "ticksPerSecond: 120\n", false},
		{"assets/audio/bgm.wav", "RIFF", false},
		{"data/missing.yaml", "", true},
		{"game.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGlobAndReadDir(t *testing.T) {
	initTestFS(t)

	matches, err := Glob("data/scripts/*.lua")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 scripts", matches)
	}

	entries, err := ReadDir("data/scripts")
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ReadDir() returned %d entries, want 2", len(entries))
	}

	if !Exists("assets/audio/bgm.wav") || Exists("assets/audio/missing.wav") {
		t.Error("Exists() mismatch")
	}
}
