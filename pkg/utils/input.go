// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardState 存储当前帧的键盘状态
type KeyboardState struct {
	// Pressed 当前按下的按键
	Pressed []ebiten.Key
	// JustPressed 本帧刚按下的按键
	JustPressed []ebiten.Key
}

// ReadKeyboard 读取当前帧的键盘状态
// 复用 state 中的切片以避免每帧分配
func ReadKeyboard(state *KeyboardState) {
	state.Pressed = inpututil.AppendPressedKeys(state.Pressed[:0])
	state.JustPressed = inpututil.AppendJustPressedKeys(state.JustPressed[:0])
}

// ContainsKey 检查按键列表中是否包含指定按键
func ContainsKey(keys []ebiten.Key, k ebiten.Key) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}
