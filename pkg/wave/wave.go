// Package wave 实现敌人弹幕波次：波次定义、波次调度器与波次脚本加载器
//
// 一个 Wave 是带有声明时长的定时动作。调度器在当前波次开始后经过其时长，
// 才会停止它并启动下一个波次。异步波次在独立 goroutine 中运行，
// 各自持有取消句柄，Stop 会阻塞直到 goroutine 完全退出。
package wave

import (
	"time"

	"github.com/decker502/danmaku/pkg/scene"
)

// Owner 波次所属的敌人
//
// SpawnOrigin 与 SpawnBullet 会被发射 goroutine 调用，实现必须并发安全；
// 其余方法只在模拟线程中由同步波次调用。
type Owner interface {
	// SpawnOrigin 返回子弹发射中心
	SpawnOrigin() (x, y float64)
	// SpawnBullet 生成一颗敌方子弹
	SpawnBullet(spec BulletSpec)

	SetToggleRandomTarget(on bool)
	SetXTarget(percent float64)
	SetSpeed(speed float64)
}

// BulletSpec 子弹生成参数
type BulletSpec struct {
	// X, Y 子弹左上角坐标
	X, Y float64
	// ForceX, ForceY 每帧位移
	ForceX, ForceY float64
	Damage         float64
	Size           float64
	Sprite         *scene.RectSprite
}

// Wave 波次
type Wave interface {
	// Duration 波次开始后调度器需要等待的时长
	Duration() time.Duration
	// Start 启动波次；同步波次的错误直接返回
	Start() error
	// Stop 停止波次并等待异步任务退出，返回异步任务的错误
	Stop() error
	// Owner 返回波次绑定的敌人
	Owner() Owner
}

// SleepWave 纯延时波次
type SleepWave struct {
	owner    Owner
	duration time.Duration
}

// NewSleepWave 创建延时波次
func NewSleepWave(owner Owner, ms float64) *SleepWave {
	return &SleepWave{
		owner:    owner,
		duration: millis(ms),
	}
}

func (w *SleepWave) Duration() time.Duration { return w.duration }
func (w *SleepWave) Start() error            { return nil }
func (w *SleepWave) Stop() error             { return nil }
func (w *SleepWave) Owner() Owner            { return w.owner }

// millis 将毫秒数（可含小数）转换为 time.Duration
func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
