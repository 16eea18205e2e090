package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// TestContainsKey 测试按键列表查找
func TestContainsKey(t *testing.T) {
	keys := []ebiten.Key{ebiten.KeyW, ebiten.KeyJ}

	if !ContainsKey(keys, ebiten.KeyJ) {
		t.Error("Expected KeyJ to be found")
	}
	if ContainsKey(keys, ebiten.KeyR) {
		t.Error("Expected KeyR not to be found")
	}
	if ContainsKey(nil, ebiten.KeyJ) {
		t.Error("Expected nil list to contain nothing")
	}
}
