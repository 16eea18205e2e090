package utils

import (
	"math/rand"
	"testing"
)

// TestClamp 测试范围限制
func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		expected float64
	}{
		{"低于下限", -5, 0},
		{"范围内", 42, 42},
		{"高于上限", 500, 375},
		{"等于上限", 375, 375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, 0, 375); got != tt.expected {
				t.Errorf("Clamp(%v, 0, 375) = %v, 期望 %v", tt.v, got, tt.expected)
			}
		})
	}
}

// TestNextRange 测试随机数落在指定范围内
func TestNextRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := NextRange(rng, 0.01, 0.99)
		if v < 0.01 || v >= 0.99 {
			t.Fatalf("NextRange 返回 %v，超出 [0.01, 0.99)", v)
		}
	}

	if v := NextRange(nil, 2, 3); v < 2 || v >= 3 {
		t.Errorf("NextRange(nil) 返回 %v，超出 [2, 3)", v)
	}
}
