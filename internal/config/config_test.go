package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saeidalz13/submarine-duel/models/submarine"
)

var keys = []string{
	"STAGE", "SECTOR_WIDTH", "SECTOR_HEIGHT", "TORPEDO_RANGE", "SILENCE_RANGE", "BLAST_RADIUS",
	"CENTROID_LIMIT", "DIRECT_HIT_DAMAGE", "SPLASH_DAMAGE", "SILENCE_INTERVAL", "SPECTATOR_PORT",
	"SPECTATOR_ORIGINS", "DATABASE_URL", "DATABASE_DRIVER", "SEED",
}

// clearEnv blanks every key for the duration of the test; empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Stage != StageDev {
		t.Fatalf("expected stage: %s\t got: %s", StageDev, cfg.Stage)
	}
	if cfg.Game != submarine.DefaultSettings {
		t.Fatalf("expected settings: %+v\t got: %+v", submarine.DefaultSettings, cfg.Game)
	}
	if cfg.SpectatorPort != 0 || cfg.DatabaseURL != "" || cfg.Seed != 0 {
		t.Fatalf("optional parts must be off by default: %+v", cfg)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("expected driver: %s\t got: %s", "postgres", cfg.DatabaseDriver)
	}
}

func TestEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TORPEDO_RANGE", "3")

	path := writeEnvFile(t, "TORPEDO_RANGE=6\nSILENCE_INTERVAL=10\nSPECTATOR_PORT=7171\nSPECTATOR_ORIGINS=https://a.example,https://b.example\nDATABASE_DRIVER=sqlite\nDATABASE_URL=journal/matches.db\nSEED=42\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		expected int
		got      int
	}{
		{"environment wins over the file", 3, cfg.Game.Tracker.TorpedoRange},
		{"file fills the gaps", 10, cfg.Game.SilenceInterval},
		{"spectator port", 7171, cfg.SpectatorPort},
		{"seed", 42, int(cfg.Seed)},
		{"untouched default", submarine.DefaultSettings.Tracker.SilenceRange, cfg.Game.Tracker.SilenceRange},
		{"origins", 2, len(cfg.SpectatorOrigins)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.expected != test.got {
				t.Fatalf("expected: %d\t got: %d", test.expected, test.got)
			}
		})
	}

	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "journal/matches.db" {
		t.Fatalf("unexpected database config: %s %s", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
}

func TestProdIgnoresEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", StageProd)

	path := writeEnvFile(t, "SILENCE_INTERVAL=10\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.SilenceInterval != submarine.DefaultSettings.SilenceInterval {
		t.Fatalf("expected: %d\t got: %d", submarine.DefaultSettings.SilenceInterval, cfg.Game.SilenceInterval)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown stage", "STAGE", "staging"},
		{"not a number", "TORPEDO_RANGE", "four"},
		{"port out of range", "SPECTATOR_PORT", "70000"},
		{"zero sector", "SECTOR_WIDTH", "0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected an error for %s=%s", test.key, test.value)
			}
		})
	}
}
