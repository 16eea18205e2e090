package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/danmaku/pkg/wave"
)

// writeStageFixture 写入关卡配置与脚本
func writeStageFixture(t *testing.T, stagesYAML, script string) string {
	t.Helper()
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "test.wvsc")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("Failed to create script: %v", err)
	}
	stagesPath := filepath.Join(dir, "stages.yaml")
	content := strings.ReplaceAll(stagesYAML, "$SCRIPT", filepath.ToSlash(scriptPath))
	if err := os.WriteFile(stagesPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create stage config: %v", err)
	}
	return stagesPath
}

// TestLoadStageConfig 测试关卡配置加载
func TestLoadStageConfig(t *testing.T) {
	t.Run("valid config with defaults", func(t *testing.T) {
		path := writeStageFixture(t, `
stages:
  - id: "1"
    waveScript: "$SCRIPT"
  - id: "2"
    name: "Second"
    enemyHP: 2000
    playerHP: 10
    loop: false
    waveScript: "$SCRIPT"
`, "SleepBulletWave 100\n")

		cfg, err := LoadStageConfig(path)
		if err != nil {
			t.Fatalf("LoadStageConfig() failed: %v", err)
		}

		if cfg.Playfield.Width != 385 || cfg.Playfield.Height != 600 {
			t.Errorf("Expected default playfield 385x600, got %vx%v", cfg.Playfield.Width, cfg.Playfield.Height)
		}
		if len(cfg.Stages) != 2 {
			t.Fatalf("Expected 2 stages, got %d", len(cfg.Stages))
		}

		first := cfg.Stages[0]
		if first.Name != "1" || first.EnemyHP != 1000 || first.PlayerHP != 30 || !first.Looping() {
			t.Errorf("Expected defaults applied, got %+v", first)
		}
		if first.Script != "SleepBulletWave 100\n" {
			t.Errorf("Expected script loaded, got %q", first.Script)
		}

		second := cfg.Stages[1]
		if second.Name != "Second" || second.EnemyHP != 2000 || second.PlayerHP != 10 || second.Looping() {
			t.Errorf("Expected explicit values kept, got %+v", second)
		}
	})

	t.Run("malformed script aborts loading", func(t *testing.T) {
		path := writeStageFixture(t, `
stages:
  - id: "1"
    waveScript: "$SCRIPT"
`, "SleepBulletWave 100\nEnemySpeedSetWave fast\n")

		_, err := LoadStageConfig(path)
		var perr *wave.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected *wave.ParseError, got %v", err)
		}
		if perr.Line != 2 {
			t.Errorf("Expected error on line 2, got %d", perr.Line)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name string
			yaml string
		}{
			{"no stages", "stages: []\n"},
			{"missing id", "stages:\n  - waveScript: \"$SCRIPT\"\n"},
			{"missing script", "stages:\n  - id: \"1\"\n"},
			{"duplicate id", "stages:\n  - id: \"1\"\n    waveScript: \"$SCRIPT\"\n  - id: \"1\"\n    waveScript: \"$SCRIPT\"\n"},
			{"negative hp", "stages:\n  - id: \"1\"\n    enemyHP: -1\n    waveScript: \"$SCRIPT\"\n"},
			{"missing script file", "stages:\n  - id: \"1\"\n    waveScript: \"does/not/exist.wvsc\"\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeStageFixture(t, tt.yaml, "SleepBulletWave 1\n")
				if _, err := LoadStageConfig(path); err == nil {
					t.Error("Expected error, got nil")
				}
			})
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := LoadStageConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

// TestLoadBundledStageConfig 测试随程序发布的关卡配置
func TestLoadBundledStageConfig(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(filepath.Join("..", "..")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadStageConfig(DefaultStagesFile)
	if err != nil {
		t.Fatalf("LoadStageConfig() failed: %v", err)
	}
	if len(cfg.Stages) < 1 || cfg.Stages[0].Script == "" {
		t.Fatal("Expected at least one stage with a loaded script")
	}
	if cfg.Playfield.Width != PlayfieldWidth || cfg.Playfield.Height != PlayfieldHeight {
		t.Errorf("Expected playfield %vx%v, got %vx%v", PlayfieldWidth, PlayfieldHeight, cfg.Playfield.Width, cfg.Playfield.Height)
	}

	app, err := Load(DefaultConfigPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if app.Game.StagesFile != DefaultStagesFile {
		t.Errorf("Expected bundled config to point at %s, got %s", DefaultStagesFile, app.Game.StagesFile)
	}
}
