package scenes

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/game"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/timing"
	"github.com/decker502/danmaku/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

const (
	// KeyRestart 从第一关重新开始
	KeyRestart = ebiten.KeyR
	// KeyNextStage 通关后进入下一关
	KeyNextStage = ebiten.KeyEnter

	// HUD 文本位置与行距
	HUDX          = 4
	HUDY          = 4
	HUDLineHeight = 16
)

// GameScene represents the main gameplay screen.
// It owns the playfield scene, its timer scheduler and the stage manager.
type GameScene struct {
	field  *scene.Scene
	timers *timing.Scheduler
	stages *game.StageManager
	log    *zap.Logger
}

// NewGameScene 创建游戏场景并开始第一关
//
// 参数：
//   - stageCfg: 已加载并校验的关卡配置
//   - gameCfg: 玩法配置（碰撞 worker 数、随机种子、调试血量）
//   - log: 日志
//
// 返回：
//   - error: 第一关启动失败
func NewGameScene(stageCfg *config.StageConfig, gameCfg config.GameConfig, log *zap.Logger) (*GameScene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	timers := timing.NewScheduler()
	field := scene.NewScene(stageCfg.Playfield.Width, stageCfg.Playfield.Height, timers, log,
		scene.WithHitTestWorkers(gameCfg.HitTestWorkers))
	field.Load()

	seed := gameCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []game.ManagerOption{game.WithRand(rand.New(rand.NewSource(seed)))}
	if gameCfg.DebugPlayerHP {
		opts = append(opts, game.WithPlayerHP(config.DebugPlayerHP))
	}

	s := &GameScene{
		field:  field,
		timers: timers,
		stages: game.NewStageManager(field, stageCfg.Stages, log, opts...),
		log:    log,
	}
	if err := s.stages.StartNext(); err != nil {
		field.Unload()
		return nil, fmt.Errorf("start first stage: %w", err)
	}

	log.Info("[GameScene] created",
		zap.Int("stages", len(stageCfg.Stages)),
		zap.Int64("seed", seed),
		zap.Int("hitTestWorkers", gameCfg.HitTestWorkers))
	return s, nil
}

// Stages 返回关卡管理器
func (s *GameScene) Stages() *game.StageManager {
	return s.stages
}

// Field 返回场地场景
func (s *GameScene) Field() *scene.Scene {
	return s.field
}

// Update 处理重新开始/下一关按键并推进场地一帧
func (s *GameScene) Update(ctx *scene.FrameContext) error {
	switch {
	case ctx.JustPressed.IsDown(KeyRestart):
		if err := s.stages.Restart(); err != nil {
			return fmt.Errorf("restart: %w", err)
		}
	case ctx.JustPressed.IsDown(KeyNextStage):
		if res, ok := s.stages.LastResult(); ok && res.State == game.FinishSuccess && s.stages.HasNext() {
			if err := s.stages.StartNext(); err != nil {
				return fmt.Errorf("next stage: %w", err)
			}
		}
	}

	s.field.Update(ctx)
	return nil
}

// Draw 绘制场地与 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.field.Draw(utils.NewScreenRenderer(screen))
	for i, line := range s.hudLines() {
		ebitenutil.DebugPrintAt(screen, line, HUDX, HUDY+i*HUDLineHeight)
	}
}

// hudLines 生成 HUD 文本
func (s *GameScene) hudLines() []string {
	lines := make([]string, 0, 5)
	if st := s.stages.Current(); st != nil {
		status := st.Status()
		lines = append(lines,
			fmt.Sprintf("Stage %s", st.Name),
			fmt.Sprintf("Enemy HP: %.0f/%.0f", status.EnemyHP, status.MaxEnemyHP),
			fmt.Sprintf("Player HP: %.0f/%.0f", status.PlayerHP, status.MaxPlayerHP),
			fmt.Sprintf("Combo: %d", status.Combo))
	}
	lines = append(lines, fmt.Sprintf("Score: %.0f", s.stages.Score()))

	if res, ok := s.stages.LastResult(); ok {
		lines = append(lines, s.banner(res))
	}
	return lines
}

func (s *GameScene) banner(res game.StageResult) string {
	switch res.State {
	case game.FinishSuccess:
		if s.stages.HasNext() {
			return "STAGE CLEAR - Enter: next stage  R: restart"
		}
		return "ALL STAGES CLEAR - R: restart"
	case game.FinishFailed:
		return "GAME OVER - R: restart"
	default:
		return "STAGE STOPPED - R: restart"
	}
}

// Close 停止当前关卡并卸载场地
func (s *GameScene) Close() error {
	err := s.stages.Stop()
	s.field.Unload()
	s.log.Info("[GameScene] closed")
	return err
}
