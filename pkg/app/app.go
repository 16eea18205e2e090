// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载关卡配置、创建场景，
// 并把 ebiten 的 tick 转换为带时间与按键快照的帧上下文。
package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/game"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/scenes"
	"github.com/decker502/danmaku/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// KeyQuit 退出游戏
const KeyQuit = ebiten.KeyEscape

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	log          *zap.Logger

	width, height int
	step          time.Duration
	total         time.Duration
	keys          utils.KeyboardState
	closed        bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
//
// 参数：
//   - cfg: 应用配置
//   - stageCfg: 已加载的关卡配置
//   - log: 日志
func NewApp(cfg *config.Config, stageCfg *config.StageConfig, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	gameScene, err := scenes.NewGameScene(stageCfg, cfg.Game, log)
	if err != nil {
		return nil, fmt.Errorf("create game scene: %w", err)
	}

	sceneManager := game.NewSceneManager(log)
	sceneManager.SwitchTo(gameScene)

	a := &App{
		sceneManager: sceneManager,
		log:          log,
		width:        int(stageCfg.Playfield.Width),
		height:       int(stageCfg.Playfield.Height),
		step:         time.Second / time.Duration(cfg.Game.TPS),
	}
	log.Info("[App] initialized",
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Int("tps", cfg.Game.TPS))
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次，帧时长固定为 1/TPS
func (a *App) Update() error {
	utils.ReadKeyboard(&a.keys)
	if utils.ContainsKey(a.keys.JustPressed, KeyQuit) {
		return ebiten.Termination
	}
	return a.advance(scene.NewKeySet(a.keys.Pressed...), scene.NewKeySet(a.keys.JustPressed...))
}

// advance 以给定按键快照推进一帧
func (a *App) advance(pressed, justPressed scene.KeySet) error {
	a.total += a.step
	ctx := &scene.FrameContext{
		Elapsed:     a.step,
		Total:       a.total,
		Keys:        pressed,
		JustPressed: justPressed,
	}
	return a.sceneManager.Update(ctx)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.sceneManager.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸（场地尺寸）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Size 返回场地尺寸
func (a *App) Size() (int, int) {
	return a.width, a.height
}

// Total 返回游戏开始后的累计时长
func (a *App) Total() time.Duration {
	return a.total
}

// Close 关闭当前场景，停止所有波次 goroutine
// 重复调用无效果
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	err := a.sceneManager.Close()
	a.log.Info("[App] closed")
	return err
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
