package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/ecsengine/cmd/ecsdemo/component"
	demosystem "github.com/l1jgo/ecsengine/cmd/ecsdemo/system"
	"github.com/l1jgo/ecsengine/internal/core/ecs"
	"github.com/l1jgo/ecsengine/internal/engineconfig"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/engine.toml"
	if p := os.Getenv("ECSENGINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	engine := ecs.NewEngine(
		ecs.WithConfig(cfg.Engine.ToEngineConfig()),
		ecs.WithLogger(log),
	)

	movement := demosystem.NewMovementSystem(engine, 0)
	decay := demosystem.NewDecaySystem(engine, 10, time.Second, log)
	if err := engine.AddSystem(movement); err != nil {
		return fmt.Errorf("register movement system: %w", err)
	}
	if err := engine.AddSystem(decay); err != nil {
		return fmt.Errorf("register decay system: %w", err)
	}

	spawnDemoEntities(engine, log)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	log.Info("engine started", zap.Duration("tick_rate", cfg.Engine.TickRate))

	for {
		select {
		case <-ticker.C:
			engine.Update(cfg.Engine.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func loadOrDefault(path string) (*engineconfig.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return engineconfig.Defaults(), nil
	}
	return engineconfig.Load(path)
}

func newLogger(cfg engineconfig.LoggingConfig) (*zap.Logger, error) {
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
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// spawnDemoEntities seeds the engine with a handful of entities so the
// demo loop has something to move and decay.
func spawnDemoEntities(e *ecs.Engine, log *zap.Logger) {
	for i := 0; i < 5; i++ {
		ent := e.CreateEntity()
		e.AddEntity(ent)
		ecs.Add(ent, &component.Position{X: float64(i), Y: 0})
		ecs.Add(ent, &component.Velocity{DX: 1, DY: 0.5})
		ecs.Add(ent, &component.Health{Current: 10, Max: 10})
	}
	log.Info("spawned demo entities", zap.Int("count", 5))
}
