package wave

import (
	"context"
	"math"
	"time"

	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/timing"
)

// 全方向弹幕的默认参数
const (
	DefaultAngleOffset  = 0.0
	DefaultBulletDamage = 10.0
	DefaultBulletSize   = 7.0
)

// AllDirectionWave 全方向弹幕
//
// 每次射击以敌人中心为原点，沿 AngleOffset + k*360/BulletCount 度
// 均匀发射 BulletCount 颗子弹，共射击 ShootCount 次，间隔 ShootInterval。
// 波次时长为 ShootCount*ShootInterval，发射在后台 goroutine 中进行。
type AllDirectionWave struct {
	*ActionWave

	BulletCount   int
	ShootCount    int
	ShootInterval time.Duration
	Force         float64
	Sprite        *scene.RectSprite
	AngleOffset   float64
	Damage        float64
	Size          float64
}

// NewAllDirectionWave 创建全方向弹幕波次
//
// 参数：
//   - bulletCount: 每次射击的子弹数
//   - shootCount: 射击次数
//   - interval: 射击间隔
//   - force: 子弹每帧位移
//   - sprite: 子弹精灵，所有子弹共享
func NewAllDirectionWave(owner Owner, bulletCount, shootCount int, interval time.Duration, force float64, sprite *scene.RectSprite) *AllDirectionWave {
	w := &AllDirectionWave{
		BulletCount:   bulletCount,
		ShootCount:    shootCount,
		ShootInterval: interval,
		Force:         force,
		Sprite:        sprite,
		AngleOffset:   DefaultAngleOffset,
		Damage:        DefaultBulletDamage,
		Size:          DefaultBulletSize,
	}
	w.ActionWave = NewActionWave(owner, time.Duration(shootCount)*interval, w.emit, true)
	return w
}

// emit 发射循环，每次射击前检查取消
func (w *AllDirectionWave) emit(ctx context.Context) error {
	owner := w.Owner()
	for i := 0; i < w.ShootCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.Shoot(owner)
		if err := timing.Sleep(ctx, w.ShootInterval); err != nil {
			return err
		}
	}
	return nil
}

// Shoot 发射一轮子弹
func (w *AllDirectionWave) Shoot(owner Owner) {
	if w.BulletCount <= 0 {
		return
	}
	cx, cy := owner.SpawnOrigin()
	step := 360.0 / float64(w.BulletCount)
	for k := 0; k < w.BulletCount; k++ {
		rad := (w.AngleOffset + float64(k)*step) * math.Pi / 180
		owner.SpawnBullet(BulletSpec{
			X:      cx - w.Size/2,
			Y:      cy - w.Size/2,
			ForceX: w.Force * math.Cos(rad),
			ForceY: w.Force * math.Sin(rad),
			Damage: w.Damage,
			Size:   w.Size,
			Sprite: w.Sprite,
		})
	}
}
