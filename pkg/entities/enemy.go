package entities

import (
	"math"
	"math/rand"
	"sync"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/utils"
	"github.com/decker502/danmaku/pkg/wave"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// Stage 实体上报命中事件的关卡
// 碰撞检测可能并行执行，实现必须并发安全
type Stage interface {
	EnemyHitted(damage, score float64)
	PlayerHitted(damage, score float64)
	// PlayerHP 返回玩家当前血量与最大血量
	PlayerHP() (hp, max float64)
}

// Enemy 敌人
//
// 在场地上方水平移动，由波次调度器驱动弹幕。
// 发射 goroutine 通过 SpawnOrigin/SpawnBullet 访问敌人，
// 二者只读取在模拟线程中发布的中心坐标与所属场景。
type Enemy struct {
	scene.GameObject

	BodyDamage float64
	// OnWaveFault 波次出错时调用
	OnWaveFault func(err error)

	stage Stage
	rng   *rand.Rand
	log   *zap.Logger
	waves *wave.Scheduler

	targetX            float64
	speed              float64
	toggleRandomTarget bool

	originMu sync.RWMutex
	originX  float64
	originY  float64
	field    *scene.Scene
}

// NewEnemy 创建敌人
//
// 参数:
//   - stage: 接收命中事件的关卡
//   - rng: 随机目标使用的随机源，nil 表示全局随机源
//   - log: 日志
func NewEnemy(stage Stage, rng *rand.Rand, log *zap.Logger) *Enemy {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Enemy{
		GameObject:         scene.NewGameObject(0, 0, config.EnemyWidth, config.EnemyHeight),
		BodyDamage:         config.EnemyBodyDamage,
		stage:              stage,
		rng:                rng,
		log:                log,
		speed:              config.EnemyDefaultSpeed,
		toggleRandomTarget: true,
	}
	e.Name = "Enemy"
	e.Tag = TagEnemy
	e.IsHitVisible = true
	e.IsHittedVisible = true
	e.Sprite = scene.NewRectSprite(colornames.Lime)
	return e
}

// UseWaves 设置敌人的波次序列
// 必须在加入场景之前调用
func (e *Enemy) UseWaves(waves []wave.Wave, loop bool) {
	e.waves = wave.NewScheduler(waves, loop, e.log)
	e.waves.OnFault = func(err error) {
		if e.OnWaveFault != nil {
			e.OnWaveFault(err)
		}
	}
}

// Waves 返回波次调度器，未设置波次时为 nil
func (e *Enemy) Waves() *wave.Scheduler {
	return e.waves
}

// Load 放置到出生点，选择随机目标并启动波次
func (e *Enemy) Load() {
	s := e.ParentScene()
	e.W = config.EnemyWidth
	e.H = config.EnemyHeight
	e.X = s.Width/2 - e.W/2
	e.Y = config.EnemySpawnY
	e.targetX = e.X
	e.publish(s)
	e.randomTarget()

	if e.waves != nil && s.Timers() != nil {
		e.waves.Start(s.Timers())
	}
	e.log.Debug("[Enemy] loaded", zap.Float64("x", e.X), zap.Float64("y", e.Y))
}

// Unload 停止波次
func (e *Enemy) Unload() {
	if err := e.StopWaves(); err != nil {
		e.log.Error("[Enemy] wave stopped with error", zap.Error(err))
	}
	e.publish(nil)
	e.log.Debug("[Enemy] unloaded")
}

// StopWaves 停止波次调度器并等待当前波次退出
func (e *Enemy) StopWaves() error {
	if e.waves == nil {
		return nil
	}
	return e.waves.Stop()
}

// Update 向目标 X 移动，到达后按需重新选择随机目标
func (e *Enemy) Update(ctx *scene.FrameContext) {
	if e.targetX > e.X {
		e.X = math.Min(e.X+e.speed, e.targetX)
	} else {
		e.X = math.Max(e.X-e.speed, e.targetX)
	}

	if math.Abs(e.targetX-e.X) < e.speed {
		e.X = e.targetX
		if e.toggleRandomTarget {
			e.randomTarget()
		}
	}

	e.publish(e.ParentScene())
}

// OnCollision 被玩家子弹击中
func (e *Enemy) OnCollision(other scene.Object) {
	if b, ok := other.(*PlayerBullet); ok {
		e.stage.EnemyHitted(b.Damage, b.Point)
		b.RemoveMe()
	}
}

// SpawnOrigin 返回最近一次发布的中心坐标
func (e *Enemy) SpawnOrigin() (float64, float64) {
	e.originMu.RLock()
	defer e.originMu.RUnlock()
	return e.originX, e.originY
}

// SpawnBullet 在所属场景中生成敌方子弹
// 敌人已卸载时忽略
func (e *Enemy) SpawnBullet(spec wave.BulletSpec) {
	e.originMu.RLock()
	field := e.field
	e.originMu.RUnlock()

	if field == nil {
		return
	}
	field.AddChild(NewEnemyBullet(spec))
}

// SetToggleRandomTarget 开关到达目标后自动选择随机目标
func (e *Enemy) SetToggleRandomTarget(on bool) {
	e.toggleRandomTarget = on
}

// SetXTarget 设置水平目标，percent 为场地宽度的比例
// 目标会被限制在敌人完全位于场地内的范围
func (e *Enemy) SetXTarget(percent float64) {
	width := config.PlayfieldWidth
	if s := e.ParentScene(); s != nil {
		width = s.Width
	}
	e.targetX = utils.Clamp(width*percent, 0, math.Max(0, width-e.W))
}

// SetSpeed 设置水平速度
func (e *Enemy) SetSpeed(speed float64) {
	e.speed = speed
}

// TargetX 返回当前水平目标
func (e *Enemy) TargetX() float64 {
	return e.targetX
}

// Speed 返回水平速度
func (e *Enemy) Speed() float64 {
	return e.speed
}

// ToggleRandomTarget 返回是否自动选择随机目标
func (e *Enemy) ToggleRandomTarget() bool {
	return e.toggleRandomTarget
}

func (e *Enemy) randomTarget() {
	e.SetXTarget(utils.NextRange(e.rng, config.EnemyRandomTargetMin, config.EnemyRandomTargetMax))
}

// publish 发布中心坐标与所属场景，供发射 goroutine 读取
func (e *Enemy) publish(s *scene.Scene) {
	cx, cy := e.Center()
	e.originMu.Lock()
	e.originX, e.originY = cx, cy
	e.field = s
	e.originMu.Unlock()
}
