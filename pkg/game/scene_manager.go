package game

import (
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	log          *zap.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager(log *zap.Logger) *SceneManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneManager{log: log}
}

// SwitchTo changes the active scene to the provided scene.
// 被替换的场景如果实现了 Closer 会先被关闭
func (sm *SceneManager) SwitchTo(next Scene) {
	if sm.currentScene == next {
		return
	}
	if err := sm.closeCurrent(); err != nil {
		sm.log.Warn("[SceneManager] close previous scene failed", zap.Error(err))
	}
	sm.currentScene = next
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(ctx *scene.FrameContext) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(ctx)
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 关闭当前场景，程序退出时调用
func (sm *SceneManager) Close() error {
	err := sm.closeCurrent()
	sm.currentScene = nil
	return err
}

func (sm *SceneManager) closeCurrent() error {
	c, ok := sm.currentScene.(Closer)
	if !ok {
		return nil
	}
	return c.Close()
}
