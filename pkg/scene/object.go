package scene

import (
	"image/color"
	"sync/atomic"
)

// DefaultHitTestGroup 默认碰撞分组
const DefaultHitTestGroup = "Any"

// Object 场景中的对象
// 具体实体通过嵌入 GameObject 获得 Base 方法
type Object interface {
	Base() *GameObject
}

// Updatable 每帧更新
type Updatable interface {
	Update(ctx *FrameContext)
}

// Drawable 自定义绘制；未实现时按精灵颜色绘制包围盒
type Drawable interface {
	Draw(r Renderer)
}

// Collidable 碰撞回调
// 只有发起方（me）的回调会被调用，other 为被击中的对象
type Collidable interface {
	OnCollision(other Object)
}

// Loadable 加入已加载场景或场景加载时调用 Load，移除时调用 Unload
type Loadable interface {
	Load()
	Unload()
}

// RectSprite 纯色矩形精灵
// 尺寸取自所属对象的 W/H
type RectSprite struct {
	Color color.RGBA
}

// NewRectSprite 创建纯色矩形精灵
func NewRectSprite(c color.RGBA) *RectSprite {
	return &RectSprite{Color: c}
}

// GameObject 场景对象的公共数据
//
// 位置、尺寸与碰撞标志只应由模拟线程修改。
// IsHitVisible 表示可以主动发起碰撞，IsHittedVisible 表示可以被碰撞。
type GameObject struct {
	Name string
	Tag  string

	X, Y float64
	W, H float64

	HitTestGroup    string
	IsHitVisible    bool
	IsHittedVisible bool

	Sprite *RectSprite

	scene   *Scene
	removed atomic.Bool
}

// NewGameObject 创建带默认碰撞分组的对象数据
func NewGameObject(x, y, w, h float64) GameObject {
	return GameObject{
		X:            x,
		Y:            y,
		W:            w,
		H:            h,
		HitTestGroup: DefaultHitTestGroup,
	}
}

// Base 实现 Object
func (o *GameObject) Base() *GameObject {
	return o
}

// Center 返回包围盒中心点
func (o *GameObject) Center() (float64, float64) {
	return o.X + o.W/2, o.Y + o.H/2
}

// ParentScene 返回所属场景，未加入场景时为 nil
func (o *GameObject) ParentScene() *Scene {
	return o.scene
}

// RemoveMe 请求从所属场景移除自己
// 移除在本帧更新结束后才生效
func (o *GameObject) RemoveMe() {
	if o.scene == nil {
		return
	}
	o.scene.removeObject(o)
}

// PendingRemoval 返回是否已请求移除
func (o *GameObject) PendingRemoval() bool {
	return o.removed.Load()
}

// group 返回碰撞分组，空字符串视为默认分组
func (o *GameObject) group() string {
	if o.HitTestGroup == "" {
		return DefaultHitTestGroup
	}
	return o.HitTestGroup
}
