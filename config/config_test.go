package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"stylec/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("expected normal console logging by default, got %q", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("expected no file logging by default, got %q", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	data := []byte(`logging:
  console:
    level: debug
  file:
    level: normal
    destination: out.log
    mode: append
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("expected debug console level, got %q", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Destination != "out.log" || cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("unexpected file logger config: %+v", cfg.Logging.FileLogger)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n -"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	data, err := config.Dump(config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dumped.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("round trip changed configuration: %+v", cfg)
	}
}

func TestPrepareLogger(t *testing.T) {
	cfg := config.Default()
	log, err := cfg.Logging.Prepare()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}
	log.Info("logger smoke test")
	_ = log.Sync()
}

func TestPrepareFileLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "test.log")
	cfg := config.Default()
	cfg.Logging.ConsoleLogger.Level = "none"
	cfg.Logging.FileLogger = config.LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"}

	log, err := cfg.Logging.Prepare()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("written to file")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}
