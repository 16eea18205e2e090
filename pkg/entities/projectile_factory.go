package entities

import (
	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/wave"
	"golang.org/x/image/colornames"
)

// 对象标签
const (
	TagEnemy        = "enemy"
	TagPlayer       = "player"
	TagPlayerBullet = "player_bullet"
	TagEnemyBullet  = "enemy_bullet"
)

// PlayerBullet 玩家子弹，竖直向上飞行
type PlayerBullet struct {
	scene.GameObject

	Damage float64
	// Point 击中敌人的基础得分
	Point  float64
	SpeedY float64
}

// NewPlayerBullet 创建玩家子弹
//
// 参数:
//   - centerX: 子弹中心 X 坐标
//   - y: 子弹顶部 Y 坐标
func NewPlayerBullet(centerX, y float64) *PlayerBullet {
	b := &PlayerBullet{
		GameObject: scene.NewGameObject(0, y, config.PlayerBulletWidth, config.PlayerBulletHeight),
		Damage:     config.PlayerBulletDamage,
		Point:      config.PlayerBulletPoint,
		SpeedY:     config.PlayerBulletSpeed,
	}
	b.X = centerX - b.W/2
	b.Name = "PlayerBullet"
	b.Tag = TagPlayerBullet
	b.IsHittedVisible = true
	b.Sprite = scene.NewRectSprite(colornames.Magenta)
	return b
}

// Update 向上移动，完全离开场地顶部后移除
func (b *PlayerBullet) Update(ctx *scene.FrameContext) {
	b.Y -= b.SpeedY
	if b.Y < -b.H {
		b.RemoveMe()
	}
}

// EnemyBullet 敌方子弹，每帧按固定位移直线飞行
type EnemyBullet struct {
	scene.GameObject

	Damage float64
	ForceX float64
	ForceY float64
}

// NewEnemyBullet 根据生成参数创建敌方子弹
// 未指定的伤害、尺寸与精灵使用默认值
func NewEnemyBullet(spec wave.BulletSpec) *EnemyBullet {
	size := spec.Size
	if size <= 0 {
		size = config.EnemyBulletSize
	}
	damage := spec.Damage
	if damage <= 0 {
		damage = config.EnemyBulletDamage
	}
	sprite := spec.Sprite
	if sprite == nil {
		sprite = scene.NewRectSprite(colornames.Cyan)
	}

	b := &EnemyBullet{
		GameObject: scene.NewGameObject(spec.X, spec.Y, size, size),
		Damage:     damage,
		ForceX:     spec.ForceX,
		ForceY:     spec.ForceY,
	}
	b.Name = "EnemyBullet"
	b.Tag = TagEnemyBullet
	b.IsHittedVisible = true
	b.Sprite = sprite
	return b
}

// Update 移动并在离开场地后移除
func (b *EnemyBullet) Update(ctx *scene.FrameContext) {
	b.X += b.ForceX
	b.Y += b.ForceY

	s := b.ParentScene()
	if s == nil {
		return
	}
	if b.X > s.Width || b.X < -b.W || b.Y < -b.H || b.Y > s.Height {
		b.RemoveMe()
	}
}
