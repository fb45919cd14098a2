// Package engineconfig loads the TOML configuration that shapes an
// ecs.Engine at startup: pool sizing and logging, the ambient-stack
// concerns spec.md leaves to an external collaborator (SPEC_FULL.md
// §2). Grounded on the teacher's internal/config/config.go, narrowed
// from the teacher's full game-server config to the ECS-core subset.
package engineconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/l1jgo/ecsengine/internal/core/ecs"
)

// Config is the top-level file shape.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
}

// EngineConfig carries the Engine's pool tuning and tick rate.
type EngineConfig struct {
	TickRate          time.Duration `toml:"tick_rate"`
	DefaultPoolInit   int           `toml:"default_pool_initial_size"`
	DefaultPoolMax    int           `toml:"default_pool_max_size"`
	EntityPoolInit    int           `toml:"entity_pool_initial_size"`
	EntityPoolMax     int           `toml:"entity_pool_max_size"`
}

// LoggingConfig mirrors the teacher's internal/config.LoggingConfig:
// a level name and a "json" vs "console" encoder choice.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads and parses the TOML file at path, merging it over Defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:        50 * time.Millisecond,
			DefaultPoolInit: 0,
			DefaultPoolMax:  0,
			EntityPoolInit:  0,
			EntityPoolMax:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ToEngineConfig bridges the file-shaped EngineConfig to ecs.Config so
// cmd/ecsdemo doesn't hand-construct pool config inline.
func (c EngineConfig) ToEngineConfig() ecs.Config {
	return ecs.Config{
		DefaultPool: ecs.PoolConfig{InitialSize: c.DefaultPoolInit, MaxSize: c.DefaultPoolMax},
		EntityPool:  ecs.PoolConfig{InitialSize: c.EntityPoolInit, MaxSize: c.EntityPoolMax},
	}
}
