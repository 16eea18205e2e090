package utils

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ScreenRenderer 把纯色矩形绘制到 ebiten 图像上
//
// 坐标为场地坐标，OffsetX/OffsetY 用于整体平移（例如留出 HUD 区域）。
type ScreenRenderer struct {
	Screen    *ebiten.Image
	OffsetX   float64
	OffsetY   float64
	Antialias bool
}

// NewScreenRenderer 创建绘制到 screen 的渲染器
func NewScreenRenderer(screen *ebiten.Image) *ScreenRenderer {
	return &ScreenRenderer{Screen: screen}
}

// DrawRect 绘制填充矩形
// 宽或高不大于 0 时不绘制
func (r *ScreenRenderer) DrawRect(x, y, w, h float64, c color.Color) {
	if r.Screen == nil || w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(r.Screen,
		float32(x+r.OffsetX), float32(y+r.OffsetY),
		float32(w), float32(h),
		c, r.Antialias)
}
