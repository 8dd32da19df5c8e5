package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/slabcut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPartNumberSequenceByGroup = true
	cfg.DefaultPartOrderStrategy = "name"
	cfg.ListenAddr = ":9000"
	cfg.RecentScenes = []string{"/tmp/bench.json", "/tmp/cabinet.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if !loaded.DefaultPartNumberSequenceByGroup {
		t.Error("expected DefaultPartNumberSequenceByGroup=true")
	}
	if loaded.DefaultPartOrderStrategy != "name" {
		t.Errorf("expected DefaultPartOrderStrategy=name, got %s", loaded.DefaultPartOrderStrategy)
	}
	if loaded.ListenAddr != ":9000" {
		t.Errorf("expected ListenAddr=:9000, got %s", loaded.ListenAddr)
	}
	if len(loaded.RecentScenes) != 2 {
		t.Errorf("expected 2 recent scenes, got %d", len(loaded.RecentScenes))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.ListenAddr != defaults.ListenAddr {
		t.Errorf("expected default listen address %s, got %s", defaults.ListenAddr, cfg.ListenAddr)
	}
	if !cfg.DefaultAutoOrient {
		t.Error("expected auto orient on by default")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":8095" {
		t.Errorf("expected default ListenAddr, got %s", cfg.ListenAddr)
	}
	if cfg.DefaultPartOrderStrategy != model.DefaultPartOrderStrategy {
		t.Errorf("expected default order strategy, got %s", cfg.DefaultPartOrderStrategy)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentScenes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"listen_addr":":8000","recent_scenes":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentScenes == nil {
		t.Error("RecentScenes should not be nil after loading")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SLABCUT_ADDR", "127.0.0.1:7000")
	t.Setenv("SLABCUT_LOG_LEVEL", "")

	cfg := model.DefaultAppConfig()
	ApplyEnv(&cfg)

	if cfg.ListenAddr != "127.0.0.1:7000" {
		t.Errorf("expected address from env, got %s", cfg.ListenAddr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("empty env must keep the config value, got %s", cfg.LogLevel)
	}
}
