package scene

import (
	"image/color"
	"time"

	"github.com/decker502/danmaku/pkg/timing"
	"github.com/hajimehoshi/ebiten/v2"
)

// KeySet 按键集合快照
type KeySet map[ebiten.Key]bool

// NewKeySet 由按键列表构建快照
func NewKeySet(keys ...ebiten.Key) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = true
	}
	return ks
}

// IsDown 返回按键是否按下
func (ks KeySet) IsDown(k ebiten.Key) bool {
	return ks[k]
}

// FrameContext 每帧传入的上下文
// 替代全局单例：时间、输入快照与计时器调度器都从这里取得
type FrameContext struct {
	// Elapsed 距上一帧的时长
	Elapsed time.Duration
	// Total 游戏开始后的累计时长
	Total time.Duration

	// Keys 当前按下的按键
	Keys KeySet
	// JustPressed 本帧刚按下的按键
	JustPressed KeySet

	Timers *timing.Scheduler
}

// Renderer 绘制面，只需要支持纯色矩形
type Renderer interface {
	DrawRect(x, y, w, h float64, c color.Color)
}
