package utils

import "math/rand"

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NextRange 返回 [lo, hi) 内的随机数
// rng 为 nil 时使用全局随机源
func NextRange(rng *rand.Rand, lo, hi float64) float64 {
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return lo + f*(hi-lo)
}
