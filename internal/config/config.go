package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/submarine-duel/models/opponent"
	"github.com/saeidalz13/submarine-duel/models/submarine"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

type Config struct {
	Stage string
	Game  submarine.Settings

	// 0 turns the spectator feed off
	SpectatorPort    int
	SpectatorOrigins []string

	// empty turns the match journal off
	DatabaseURL    string
	DatabaseDriver string

	// 0 seeds from the clock
	Seed int64
}

type env struct {
	file map[string]string
}

// Load reads the configuration from the process environment. Outside prod,
// envFile fills in whatever the environment leaves unset; a missing file is
// fine.
func Load(envFile string) (Config, error) {
	e := env{file: map[string]string{}}
	if os.Getenv("STAGE") != StageProd && envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			e.file = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:          e.get("STAGE", StageDev),
		DatabaseURL:    e.get("DATABASE_URL", ""),
		DatabaseDriver: e.get("DATABASE_DRIVER", "postgres"),
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod: %s", cfg.Stage)
	}
	if origins := e.get("SPECTATOR_ORIGINS", ""); origins != "" {
		cfg.SpectatorOrigins = strings.Split(origins, ",")
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"SECTOR_WIDTH", submarine.DefaultSettings.SectorWidth, &cfg.Game.SectorWidth},
		{"SECTOR_HEIGHT", submarine.DefaultSettings.SectorHeight, &cfg.Game.SectorHeight},
		{"TORPEDO_RANGE", opponent.DefaultSettings.TorpedoRange, &cfg.Game.Tracker.TorpedoRange},
		{"SILENCE_RANGE", opponent.DefaultSettings.SilenceRange, &cfg.Game.Tracker.SilenceRange},
		{"BLAST_RADIUS", opponent.DefaultSettings.BlastRadius, &cfg.Game.Tracker.BlastRadius},
		{"CENTROID_LIMIT", opponent.DefaultSettings.CentroidLimit, &cfg.Game.Tracker.CentroidLimit},
		{"DIRECT_HIT_DAMAGE", opponent.DefaultDamageModel.Direct, &cfg.Game.Damage.Direct},
		{"SPLASH_DAMAGE", opponent.DefaultDamageModel.Splash, &cfg.Game.Damage.Splash},
		{"SILENCE_INTERVAL", submarine.DefaultSettings.SilenceInterval, &cfg.Game.SilenceInterval},
		{"SPECTATOR_PORT", 0, &cfg.SpectatorPort},
	}
	for _, i := range ints {
		v, err := e.getInt(i.key, i.fallback)
		if err != nil {
			return Config{}, err
		}
		*i.dst = v
	}

	seed, err := e.getInt("SEED", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = int64(seed)

	if cfg.SpectatorPort < 0 || cfg.SpectatorPort > 65535 {
		return Config{}, fmt.Errorf("invalid SPECTATOR_PORT: %d", cfg.SpectatorPort)
	}
	if cfg.Game.SectorWidth <= 0 || cfg.Game.SectorHeight <= 0 {
		return Config{}, fmt.Errorf("sector size must be positive: %dx%d", cfg.Game.SectorWidth, cfg.Game.SectorHeight)
	}
	return cfg, nil
}

func (e env) get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := e.file[key]; ok && value != "" {
		return value
	}
	return fallback
}

func (e env) getInt(key string, fallback int) (int, error) {
	value := e.get(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
