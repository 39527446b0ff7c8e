package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration loaded from a TOML file, following the
// same section-per-subsystem shape the teacher server uses.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	World    WorldConfig    `toml:"world"`
	Stats    StatsConfig    `toml:"stats"`
	Spawn    SpawnConfig    `toml:"spawn"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	TickHz    int    `toml:"tick_hz"`
	StartTime int64  // set at boot, not from config
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

// WorldConfig holds the immutable-after-init world bounds and spatial
// tuning (spec §4.2: grid cells must exceed the largest collision radius).
type WorldConfig struct {
	WidthTiles   int     `toml:"width_tiles"`
	HeightTiles  int     `toml:"height_tiles"`
	ChunkSize    int     `toml:"chunk_size"`
	GridCellSize float64 `toml:"grid_cell_size"`
	Seed         int64   `toml:"seed"`
}

// StatsConfig is the StatThresholdsConfig singleton named in spec §6.
type StatsConfig struct {
	LowNeedThreshold     float64 `toml:"low_need_threshold"`
	HealthRegenMinHealth float64 `toml:"health_regen_min_health"`
}

// SpawnConfig tunes the hostile NPC spawn/despawn pressure system (§4.5).
type SpawnConfig struct {
	TotalCap          int           `toml:"total_cap"`
	ShoreboundCap     int           `toml:"shorebound_cap"`
	ShardkinCap       int           `toml:"shardkin_cap"`
	DrownedWatchCap   int           `toml:"drownedwatch_cap"`
	InnerRingRadius   float64       `toml:"inner_ring_radius"`
	MiddleRingRadius  float64       `toml:"middle_ring_radius"`
	OuterRingRadius   float64       `toml:"outer_ring_radius"`
	CampingStationary time.Duration `toml:"camping_stationary"`
	CampingResetDist  float64       `toml:"camping_reset_dist"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a reasonable starting configuration, used when no file is
// supplied (tests, local dev), matching the teacher's config defaults style.
func Default() Config {
	return Config{
		Server: ServerConfig{Name: "shardfall", TickHz: 20},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
		},
		World: WorldConfig{
			WidthTiles:   2048,
			HeightTiles:  2048,
			ChunkSize:    32,
			GridCellSize: 256,
		},
		Stats: StatsConfig{
			LowNeedThreshold:     20,
			HealthRegenMinHealth: 51,
		},
		Spawn: SpawnConfig{
			TotalCap:          6,
			ShoreboundCap:     3,
			ShardkinCap:       4,
			DrownedWatchCap:   1,
			InnerRingRadius:   300,
			MiddleRingRadius:  900,
			OuterRingRadius:   1800,
			CampingStationary: 60 * time.Second,
			CampingResetDist:  500,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads a TOML file at path, decoding over the defaults so an omitted
// section in the file still carries the default's values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
