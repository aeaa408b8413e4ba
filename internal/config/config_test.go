package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "CORS_ORIGINS", "STATE_PATH", "STATE_PASSPHRASE",
		"OPENROUTER_API_KEY", "OPENROUTER_URL", "APP_REFERER", "APP_TITLE",
		"SYNC_ENDPOINT", "SYNC_CREDENTIAL", "DEBUG", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATE_PASSPHRASE", "hunter2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Environment != "dev" || !cfg.Debug {
		t.Errorf("dev environment should default to debug: %+v", cfg)
	}
	if cfg.StatePath != "data/poewrite.state" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.CORSOrigins != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
}

func TestLoadRequiresPassphrase(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "STATE_PASSPHRASE") {
		t.Errorf("err = %v, want missing passphrase error", err)
	}
}

func TestLoadProdDisablesDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATE_PASSPHRASE", "hunter2")
	t.Setenv("ENVIRONMENT", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Debug {
		t.Error("Debug = true in prod")
	}

	t.Setenv("DEBUG", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("explicit DEBUG=true ignored")
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATE_PASSPHRASE", "hunter2")
	t.Setenv("PORT", "9999")

	file := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"3333\"\napp_title: \"Poe Write Dev\"\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3333" {
		t.Errorf("Port = %q, want the file to win over the environment", cfg.Port)
	}
	if cfg.AppTitle != "Poe Write Dev" {
		t.Errorf("AppTitle = %q", cfg.AppTitle)
	}
	// Keys absent from the file keep their environment values.
	if cfg.StatePassphrase != "hunter2" {
		t.Errorf("StatePassphrase = %q", cfg.StatePassphrase)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATE_PASSPHRASE", "hunter2")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load succeeded with a missing config file")
	}
}
