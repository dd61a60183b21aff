package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Economy.StartingBalance != 50 {
		t.Errorf("starting balance: got %d, want 50", cfg.Economy.StartingBalance)
	}
	if cfg.Economy.PassiveInterval != 10*time.Second {
		t.Errorf("passive interval: got %v, want 10s", cfg.Economy.PassiveInterval)
	}
	if cfg.Agent.HungerStep != 16670*time.Microsecond {
		t.Errorf("hunger step: got %v, want 16.67ms", cfg.Agent.HungerStep)
	}
	if len(cfg.Species) != 6 {
		t.Fatalf("species: got %d, want 6", len(cfg.Species))
	}

	sp, idx, ok := cfg.SpeciesByName("dolphin")
	if !ok {
		t.Fatal("dolphin not found")
	}
	if sp.Price != 150 || sp.HungerTime != 5*time.Second {
		t.Errorf("dolphin: got price %d hunger %v", sp.Price, sp.HungerTime)
	}
	if got := cfg.Derived.Footprints[idx]; got != 64 {
		t.Errorf("dolphin footprint: got %v, want 64", got)
	}
	if cfg.Derived.FrameDT != time.Second/60 {
		t.Errorf("frame dt: got %v", cfg.Derived.FrameDT)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "yaml",
			file:    "override.yaml",
			content: "economy:\n  starting_balance: 500\n  passive_interval: 5s\n",
		},
		{
			name:    "toml",
			file:    "override.toml",
			content: "[economy]\nstarting_balance = 500\npassive_interval = \"5s\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if cfg.Economy.StartingBalance != 500 {
				t.Errorf("starting balance: got %d, want 500", cfg.Economy.StartingBalance)
			}
			if cfg.Economy.PassiveInterval != 5*time.Second {
				t.Errorf("passive interval: got %v, want 5s", cfg.Economy.PassiveInterval)
			}
			// Untouched fields keep their defaults
			if cfg.Economy.FeedReward != 8 {
				t.Errorf("feed reward: got %d, want 8", cfg.Economy.FeedReward)
			}
		})
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := "initial_population: [kraken]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown initial species")
	}
}

func TestSellZoneContains(t *testing.T) {
	r := RectConfig{X: 10, Y: 10, Width: 20, Height: 20}
	tests := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{10, 10, true},
		{30, 30, true},
		{9, 15, false},
		{15, 31, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Growth.TimePerLevel != cfg.Growth.TimePerLevel {
		t.Errorf("time per level: got %v, want %v", back.Growth.TimePerLevel, cfg.Growth.TimePerLevel)
	}
}
