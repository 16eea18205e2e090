// Package scenes 提供顶层游戏场景
package scenes

import (
	"github.com/decker502/danmaku/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene       = (*GameScene)(nil)
	_ game.Closer = (*GameScene)(nil)
)
