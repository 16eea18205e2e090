package game

import (
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level game screen (e.g., the playfield).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one frame.
	// ctx carries the frame time and the input snapshot.
	Update(ctx *scene.FrameContext) error

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，用于在场景被替换或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - 被 SwitchTo 替换
//   - 游戏窗口关闭或按 Esc 退出
type Closer interface {
	// Close 停止场景持有的后台任务（如波次 goroutine）
	Close() error
}
