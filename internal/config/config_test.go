package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/trivial-meal-tracker/internal/config"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.ResolvedMode() != config.ModeLocal {
		t.Errorf("mode = %q, want local", cfg.Storage.ResolvedMode())
	}
	if cfg.Goals.DailyGoals() != model.DefaultGoals() {
		t.Errorf("goals = %+v", cfg.Goals)
	}

	// The template itself must parse back to the defaults.
	if _, err := os.Stat(filepath.Join(home, ".tmt", "config.json")); err != nil {
		t.Fatalf("template not written: %v", err)
	}
	again, err := config.Load()
	if err != nil {
		t.Fatalf("Load of the written template: %v", err)
	}
	if again != cfg {
		t.Errorf("template config = %+v, want %+v", again, cfg)
	}
}

func TestLoadBackfillsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `// partial
{
  "storage": { "user_key": "alice", "mode": "" },
  // goals left out on purpose
  "estimator": { "model": "custom" }
}`)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.ResolvedMode() != config.ModeSQLite {
		t.Errorf("mode with user key = %q, want sqlite", cfg.Storage.ResolvedMode())
	}
	if cfg.Estimator.Provider != config.DefaultProvider || cfg.Estimator.Model != "custom" {
		t.Errorf("estimator = %+v", cfg.Estimator)
	}
	if cfg.Firestore.Collection != config.DefaultCollection || cfg.Display.WordWrap != config.DefaultWordWrap {
		t.Errorf("defaults not back-filled: %+v", cfg)
	}
	if cfg.Goals.Calories != 2000 {
		t.Errorf("goals = %+v", cfg.Goals)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `{ "storage": `)
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestLoadEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "from-shell")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("ANTHROPIC_API_KEY", "")
	os.Unsetenv("ANTHROPIC_API_KEY")

	if err := os.WriteFile(".env", []byte("ANTHROPIC_API_KEY=cwd\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(home, ".tmt"), 0o700); err != nil {
		t.Fatal(err)
	}
	env := "ANTHROPIC_API_KEY=home\nGEMINI_API_KEY=home\n"
	if err := os.WriteFile(filepath.Join(home, ".tmt", ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := config.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("ANTHROPIC_API_KEY"); got != "cwd" {
		t.Errorf("ANTHROPIC_API_KEY = %q, want cwd", got)
	}
	if got := os.Getenv("GEMINI_API_KEY"); got != "home" {
		t.Errorf("GEMINI_API_KEY = %q, want home", got)
	}
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".tmt")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
