package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	body := "[engine]\ntick_rate = \"100ms\"\n\n[logging]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.TickRate.String() != "100ms" {
		t.Fatalf("expected tick_rate overridden to 100ms, got %v", cfg.Engine.TickRate)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging.level overridden to debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging.format to keep its default, got %q", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestToEngineConfig(t *testing.T) {
	ec := EngineConfig{DefaultPoolInit: 4, DefaultPoolMax: 16, EntityPoolInit: 2, EntityPoolMax: 8}
	got := ec.ToEngineConfig()
	if got.DefaultPool.InitialSize != 4 || got.DefaultPool.MaxSize != 16 {
		t.Fatalf("unexpected DefaultPool: %+v", got.DefaultPool)
	}
	if got.EntityPool.InitialSize != 2 || got.EntityPool.MaxSize != 8 {
		t.Fatalf("unexpected EntityPool: %+v", got.EntityPool)
	}
}
