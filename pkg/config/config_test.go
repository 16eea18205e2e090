package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig 测试应用配置加载
func TestLoadConfig(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.Game.TPS != 60 {
			t.Errorf("Expected default TPS 60, got %d", cfg.Game.TPS)
		}
		if cfg.Game.StagesFile != DefaultStagesFile {
			t.Errorf("Expected default stages file, got %q", cfg.Game.StagesFile)
		}
		if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
			t.Errorf("Unexpected default logging %+v", cfg.Logging)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.toml")
		content := `
[game]
tps = 120
debug_player_hp = true

[logging]
level = "debug"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.Game.TPS != 120 || !cfg.Game.DebugPlayerHP {
			t.Errorf("Expected overridden game section, got %+v", cfg.Game)
		}
		if cfg.Game.HitTestWorkers != 4 {
			t.Errorf("Expected default hit test workers, got %d", cfg.Game.HitTestWorkers)
		}
		if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
			t.Errorf("Unexpected logging %+v", cfg.Logging)
		}
		if cfg.Window.Title != "Danmaku" {
			t.Errorf("Expected default title, got %q", cfg.Window.Title)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"zero tps", "[game]\ntps = 0\n"},
			{"negative scale", "[window]\nscale = -1\n"},
			{"syntax error", "[game\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "game.toml")
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatalf("Failed to create test file: %v", err)
				}
				if _, err := Load(path); err == nil {
					t.Error("Expected error, got nil")
				}
			})
		}
	})
}
