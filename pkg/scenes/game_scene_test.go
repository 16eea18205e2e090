package scenes

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/game"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/wave"
	"go.uber.org/zap/zaptest"
)

func testStageConfig(scripts ...string) *config.StageConfig {
	cfg := &config.StageConfig{
		Playfield: config.PlayfieldConfig{Width: config.PlayfieldWidth, Height: config.PlayfieldHeight},
	}
	for i, script := range scripts {
		id := string(rune('1' + i))
		cfg.Stages = append(cfg.Stages, config.StageDef{
			ID:       id,
			Name:     id,
			EnemyHP:  20,
			PlayerHP: config.DefaultPlayerHP,
			Script:   script,
		})
	}
	return cfg
}

func newTestGameScene(t *testing.T, cfg *config.StageConfig) *GameScene {
	t.Helper()
	s, err := NewGameScene(cfg, config.GameConfig{TPS: 60, HitTestWorkers: 2, Seed: 42}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewGameScene() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestNewGameSceneStartsFirstStage 测试创建后第一关已开始
func TestNewGameSceneStartsFirstStage(t *testing.T) {
	s := newTestGameScene(t, testStageConfig("SleepBulletWave 100\n", ""))

	st := s.Stages().Current()
	if st == nil || st.ID != "1" || !st.Running() {
		t.Fatal("Expected stage 1 running")
	}
	if !s.Field().Contains(st.Enemy()) || !s.Field().Contains(st.Player()) {
		t.Error("Expected enemy and player on the field")
	}
}

// TestNewGameSceneParseError 测试第一关脚本错误时创建失败
func TestNewGameSceneParseError(t *testing.T) {
	_, err := NewGameScene(testStageConfig("EnemySetXTargetWave\n"), config.GameConfig{}, zaptest.NewLogger(t))

	var perr *wave.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *wave.ParseError, got %v", err)
	}
}

// TestGameSceneRestartKey 测试按 R 重新开始
func TestGameSceneRestartKey(t *testing.T) {
	s := newTestGameScene(t, testStageConfig("", ""))
	first := s.Stages().Current()
	oldEnemy := first.Enemy()
	first.EnemyHitted(10, 10)

	if err := s.Update(&scene.FrameContext{JustPressed: scene.NewKeySet(KeyRestart)}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if s.Stages().Current() == first || first.Running() {
		t.Error("Expected a fresh stage after restart")
	}
	if s.Stages().Score() != 0 {
		t.Errorf("Expected score reset, got %v", s.Stages().Score())
	}
	if !oldEnemy.PendingRemoval() {
		t.Error("Expected old enemy removed")
	}
}

// TestGameSceneNextStageKey 测试通关后按 Enter 进入下一关
func TestGameSceneNextStageKey(t *testing.T) {
	s := newTestGameScene(t, testStageConfig("", ""))
	next := &scene.FrameContext{JustPressed: scene.NewKeySet(KeyNextStage)}

	if err := s.Update(next); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if s.Stages().Index() != 0 {
		t.Fatal("Expected Enter ignored while the stage is running")
	}

	s.Stages().Current().EnemyHitted(20, 10)
	if !strings.Contains(strings.Join(s.hudLines(), "\n"), "STAGE CLEAR") {
		t.Errorf("Expected clear banner, got %q", s.hudLines())
	}

	if err := s.Update(next); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if s.Stages().Index() != 1 || s.Stages().Current().ID != "2" {
		t.Errorf("Expected stage 2 after Enter, got index %d", s.Stages().Index())
	}
}

// TestGameSceneHUD 测试 HUD 文本
func TestGameSceneHUD(t *testing.T) {
	tests := []struct {
		name  string
		setup func(st *game.Stage)
		want  []string
	}{
		{
			name:  "running",
			setup: func(st *game.Stage) { st.EnemyHitted(10, 10) },
			want:  []string{"Stage 1", "Enemy HP: 10/20", "Player HP: 30/30", "Combo: 1", "Score: 10"},
		},
		{
			name:  "failed",
			setup: func(st *game.Stage) { st.PlayerHitted(30, 0) },
			want:  []string{"Player HP: 0/30", "GAME OVER - R: restart"},
		},
		{
			name:  "all clear",
			setup: func(st *game.Stage) { st.EnemyHitted(20, 0) },
			want:  []string{"ALL STAGES CLEAR - R: restart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestGameScene(t, testStageConfig(""))
			tt.setup(s.Stages().Current())

			got := strings.Join(s.hudLines(), "\n")
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Expected HUD to contain %q, got:\n%s", w, got)
				}
			}
		})
	}
}

// TestGameSceneUpdateDrivesWaves 测试场景更新推进波次并生成子弹
func TestGameSceneUpdateDrivesWaves(t *testing.T) {
	s := newTestGameScene(t, testStageConfig(`AllDirectionEnemyBulletWave 4, 1, 1000, 1, colorRect("cyan")`))
	before := s.Field().Len()

	deadline := time.Now().Add(time.Second)
	frame := 0
	for s.Field().Len() < before+4 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected 4 bullets spawned, field has %d children", s.Field().Len())
		}
		frame++
		ctx := &scene.FrameContext{Total: time.Duration(frame) * 2 * time.Millisecond, Keys: scene.NewKeySet()}
		if err := s.Update(ctx); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}
