package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parksim/server/internal/config"
	coresys "github.com/parksim/server/internal/core/system"
	"github.com/parksim/server/internal/data"
	"github.com/parksim/server/internal/persist"
	"github.com/parksim/server/internal/scripting"
	"github.com/parksim/server/internal/system"
	"github.com/parksim/server/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
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
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func run() error {
	// 1. Load config
	cfgPath := "config/parksim.toml"
	if p := os.Getenv("PARKSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Connect to PostgreSQL and run migrations (optional)
	var repo *persist.SnapshotRepo
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		repo = persist.NewSnapshotRepo(db)
		log.Info("database connected")
	}

	// 4. Load data tables
	terrain, err := data.LoadTerrainTable(cfg.Data.TerrainList)
	if err != nil {
		return fmt.Errorf("load terrain table: %w", err)
	}
	buildings, err := data.LoadBuildingTable(cfg.Data.BuildingList)
	if err != nil {
		return fmt.Errorf("load building table: %w", err)
	}
	log.Info("data tables loaded",
		zap.Int("terrains", terrain.Count()),
		zap.Int("buildings", buildings.Count()))

	// 5. Build or restore the session
	st, restored, err := buildSession(cfg, repo, log)
	if err != nil {
		return err
	}

	// 5a. Run the scenario script on a fresh session
	engine := scripting.NewEngine(log)
	defer engine.Close()
	engine.Bind(st, terrain, buildings)
	if !restored && cfg.Scenario.Script != "" {
		if err := engine.RunScenario(cfg.Scenario.Script); err != nil {
			return err
		}
		log.Info("scenario applied",
			zap.String("script", cfg.Scenario.Script),
			zap.Int("entities", st.Entities.Len()))
	}

	// 6. Register systems
	runner := coresys.NewRunner()
	runner.Register(system.NewEventSystem(st.Bus))
	runner.Register(system.NewAuditSystem(st, cfg.Simulation.AuditInterval, log))
	if repo != nil {
		runner.Register(system.NewAutosaveSystem(st, repo, cfg.Simulation.SaveSlot, cfg.Simulation.AutosaveInterval, log))
	}
	runner.Register(system.NewCleanupSystem(st))

	// 7. Run the loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	w, h := st.Grid.Size()
	log.Info("simulation running",
		zap.Int("width", w), zap.Int("height", h),
		zap.Duration("tick", cfg.Simulation.TickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
			st.Tick++
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			saveFinal(st, repo, cfg.Simulation.SaveSlot, log)
			log.Info("simulation stopped", zap.Uint64("tick", st.Tick))
			return nil
		}
	}
}

// buildSession restores the configured save slot when the database holds
// one, otherwise starts a fresh session on an empty grid.
func buildSession(cfg *config.Config, repo *persist.SnapshotRepo, log *zap.Logger) (*world.State, bool, error) {
	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		raw, err := repo.Load(ctx, cfg.Simulation.SaveSlot)
		if err != nil {
			return nil, false, fmt.Errorf("load snapshot: %w", err)
		}
		if raw != nil {
			st, err := world.Restore(raw)
			if err != nil {
				return nil, false, fmt.Errorf("restore snapshot: %w", err)
			}
			log.Info("session restored",
				zap.String("slot", cfg.Simulation.SaveSlot),
				zap.Uint64("tick", st.Tick))
			return st, true, nil
		}
	}
	st, err := world.NewState(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return nil, false, fmt.Errorf("create session: %w", err)
	}
	return st, false, nil
}

func saveFinal(st *world.State, repo *persist.SnapshotRepo, slot string, log *zap.Logger) {
	if repo == nil {
		return
	}
	data, err := st.Snapshot()
	if err != nil {
		log.Error("final snapshot failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.Save(ctx, slot, data); err != nil {
		log.Error("final save failed", zap.Error(err))
		return
	}
	log.Info("session saved", zap.String("slot", slot))
}
