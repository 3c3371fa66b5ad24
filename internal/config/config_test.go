package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Model != defaultModel {
		t.Errorf("Default model = %q", cfg.Model)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("Default batch size = %d, want 10", cfg.BatchSize)
	}
	if cfg.InterBatchDelay() != 2*time.Second {
		t.Errorf("Default delay = %v, want 2s", cfg.InterBatchDelay())
	}
	if cfg.HTTPTimeout() != 120*time.Second {
		t.Errorf("Default timeout = %v, want 120s", cfg.HTTPTimeout())
	}
	if cfg.OutputDir != "." {
		t.Errorf("Default output dir = %q, want .", cfg.OutputDir)
	}
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	orig, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, orig)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoadRequiresAPIKey(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "")
	chdir(t, t.TempDir())

	if _, err := Load("", nil); err == nil {
		t.Fatal("expected error when OPENROUTER_API_KEY is unset")
	}
}

func TestLoadMergesEnv(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "sk-test")
	setEnv(t, "GATEKEEP_MODEL", "env/model")
	setEnv(t, "GATEKEEP_BATCH_SIZE", "25")
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Model != "env/model" {
		t.Errorf("Model = %q, want env override", cfg.Model)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", cfg.BatchSize)
	}
}

func TestLoadMergesFileAndOverrides(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "sk-test")
	setEnv(t, "GATEKEEP_MODEL", "")
	setEnv(t, "GATEKEEP_BATCH_SIZE", "")
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "custom.yaml")
	content := "model: file/model\nbatch_size: 5\ninter_batch_delay_seconds: 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, map[string]string{"batchSize": "7"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "file/model" {
		t.Errorf("Model = %q, want file value", cfg.Model)
	}
	if cfg.BatchSize != 7 {
		t.Errorf("BatchSize = %d, want flag override to win over file", cfg.BatchSize)
	}
	if cfg.DelaySeconds != 1 {
		t.Errorf("DelaySeconds = %d, want 1", cfg.DelaySeconds)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "sk-test")
	chdir(t, t.TempDir())

	if _, err := Load("does-not-exist.yaml", nil); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoadDotEnvSuppliesKey(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "")
	os.Unsetenv("OPENROUTER_API_KEY")
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENROUTER_API_KEY=sk-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIKey != "sk-dotenv" {
		t.Errorf("APIKey = %q, want value from .env", cfg.APIKey)
	}
}

func TestLoadRejectsBadOverride(t *testing.T) {
	setEnv(t, "OPENROUTER_API_KEY", "sk-test")
	chdir(t, t.TempDir())

	if _, err := Load("", map[string]string{"batchSize": "lots"}); err == nil {
		t.Fatal("expected error for non-integer batch size")
	}
	if _, err := Load("", map[string]string{"bogus": "x"}); err == nil {
		t.Fatal("expected error for unknown override key")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
