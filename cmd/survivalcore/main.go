// Command survivalcore boots the simulation core: load config, connect to
// Postgres and run migrations, seed static data tables, build (or generate)
// the world, wire every reducer and tick family, then drive the scheduler
// off a fixed-rate ticker until a shutdown signal arrives. Grounded on the
// teacher's cmd/l1jgo/main.go run() sequence (config -> logger -> db ->
// migrations -> data seeding -> world -> systems -> game loop -> signal
// shutdown), stripped of everything specific to Lineage's network/ECS/clan
// machinery and driven by scheduler.Dispatch instead of a phased Runner.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/soitun/survivalcore/internal/config"
	"github.com/soitun/survivalcore/internal/core/event"
	"github.com/soitun/survivalcore/internal/data"
	"github.com/soitun/survivalcore/internal/handler"
	"github.com/soitun/survivalcore/internal/inventory"
	"github.com/soitun/survivalcore/internal/persist"
	"github.com/soitun/survivalcore/internal/scheduler"
	"github.com/soitun/survivalcore/internal/spatial"
	"github.com/soitun/survivalcore/internal/system"
	"github.com/soitun/survivalcore/internal/world"
	"github.com/soitun/survivalcore/internal/worldgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/server.toml"
	if p := os.Getenv("SURVIVALCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	log.Info("database connected")

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("migrations applied")

	itemsPath := envOr("SURVIVALCORE_ITEMS", "data/yaml/items.yaml")
	items, err := data.LoadItemTable(itemsPath)
	if err != nil {
		return fmt.Errorf("load item table: %w", err)
	}
	log.Info("items loaded", zap.Int("count", items.Count()))

	var species *data.SpeciesTable
	if speciesPath := os.Getenv("SURVIVALCORE_SPECIES"); speciesPath != "" {
		species, err = data.LoadSpeciesTable(speciesPath)
		if err != nil {
			return fmt.Errorf("load species table: %w", err)
		}
	} else {
		species = data.DefaultSpeciesTable()
	}
	log.Info("species loaded", zap.Int("count", species.Count()))

	yields := data.NewYieldTable()
	if yieldsPath := os.Getenv("SURVIVALCORE_YIELDS"); yieldsPath != "" {
		yields, err = data.LoadYieldTable(yieldsPath)
		if err != nil {
			return fmt.Errorf("load yield table: %w", err)
		}
		log.Info("yields loaded", zap.Int("count", yields.Count()))
	}

	w := world.New()

	worldSeed := cfg.World.Seed
	if worldSeed == 0 {
		worldSeed = 1
	}
	monuments, chunks, err := db.LoadTerrain(ctx, w)
	if err != nil {
		return fmt.Errorf("load terrain: %w", err)
	}
	if chunks == 0 {
		genCfg := worldgen.DefaultConfig(worldSeed)
		genCfg.ChunksWide = int32(cfg.World.WidthTiles) / world.ChunkSize
		genCfg.ChunksHigh = int32(cfg.World.HeightTiles) / world.ChunkSize
		monuments = worldgen.Generate(w, genCfg)
		if err := db.SaveTerrain(ctx, w, monuments); err != nil {
			return fmt.Errorf("save terrain: %w", err)
		}
		log.Info("world generated", zap.Int("monument_zones", len(monuments)))
	} else {
		log.Info("terrain loaded", zap.Int("chunks", chunks))
	}

	if err := db.LoadSnapshot(ctx, w, items); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	log.Info("snapshot loaded", zap.Int("players", w.Players.Len()), zap.Int("items", w.Items.Len()))

	bus := event.NewBus()
	grid := spatial.NewGrid()
	sched := scheduler.New()
	invEngine := inventory.New(w, items)
	rng := rand.New(rand.NewSource(worldSeed))

	hdeps := &handler.Deps{
		World:     w,
		Items:     items,
		Species:   species,
		Yields:    yields,
		Inventory: invEngine,
		Scheduler: sched,
		Bus:       bus,
		Grid:      grid,
		Rng:       rng,
		Config:    cfg,
		Monuments: monuments,
	}

	now := time.Now().UnixMilli()
	hdeps.ReschedulePersistedAppliances(now)
	sdeps := &system.Deps{
		Handler:   hdeps,
		World:     w,
		Items:     items,
		Species:   species,
		Grid:      grid,
		Bus:       bus,
		Sched:     sched,
		Rng:       rng,
		Log:       log,
		Config:    cfg,
		Monuments: monuments,
	}
	system.RegisterAll(sched, sdeps, now)
	log.Info("tick families registered", zap.Int("rows", sched.Len()))

	tickInterval := time.Second / time.Duration(maxInt(cfg.Server.TickHz, 1))
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	saveTicker := time.NewTicker(time.Minute)
	defer saveTicker.Stop()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info("ready", zap.Duration("tick_interval", tickInterval))

	save := func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.SaveSnapshot(saveCtx, w); err != nil {
			log.Error("snapshot save failed", zap.Error(err))
		}
	}

	for {
		select {
		case <-ticker.C:
			tickNow := time.Now().UnixMilli()
			sdeps.DrainEvents(tickNow) // deliver last tick's cue stream first
			sched.Dispatch(tickNow)
		case <-saveTicker.C:
			save()
		case sig := <-shutdownCh:
			log.Info("shutting down", zap.String("signal", sig.String()))
			save()
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
