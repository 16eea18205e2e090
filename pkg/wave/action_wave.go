package wave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// paramWaveDuration 参数设置类波次的时长
const paramWaveDuration = time.Millisecond

// ActionFunc 波次动作
// 异步动作必须在 ctx 取消后尽快返回
type ActionFunc func(ctx context.Context) error

// actionRun 一次异步运行
type actionRun struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// ActionWave 执行任意动作的波次
//
// 同步模式下 Start 在调用方 goroutine 中直接执行动作；
// 异步模式下每次 Start 都会新建取消句柄并启动 goroutine。
// Start 总会先停止本波次上一次的运行。
type ActionWave struct {
	Action ActionFunc
	Async  bool

	owner    Owner
	duration time.Duration

	mu  sync.Mutex
	run *actionRun
}

// NewActionWave 创建动作波次
func NewActionWave(owner Owner, duration time.Duration, action ActionFunc, async bool) *ActionWave {
	return &ActionWave{
		Action:   action,
		Async:    async,
		owner:    owner,
		duration: duration,
	}
}

func (w *ActionWave) Duration() time.Duration { return w.duration }
func (w *ActionWave) Owner() Owner            { return w.owner }

// Start 启动波次
//
// 返回：
//   - error: 上一次异步运行的错误，或同步动作的错误
func (w *ActionWave) Start() error {
	if err := w.Stop(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Action == nil {
		return nil
	}
	if !w.Async {
		return invoke(context.Background(), w.Action)
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &actionRun{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	w.run = run

	action := w.Action
	go func() {
		defer close(run.done)
		run.err = invoke(ctx, action)
	}()
	return nil
}

// Stop 取消异步运行并等待其退出
// 因取消而返回的 context 错误不视为故障
func (w *ActionWave) Stop() error {
	w.mu.Lock()
	run := w.run
	w.run = nil
	w.mu.Unlock()

	if run == nil {
		return nil
	}
	run.cancel()
	<-run.done
	return run.err
}

// Running 返回异步任务是否仍在运行
func (w *ActionWave) Running() bool {
	w.mu.Lock()
	run := w.run
	w.mu.Unlock()
	if run == nil {
		return false
	}
	select {
	case <-run.done:
		return false
	default:
		return true
	}
}

// invoke 执行动作，把 panic 转为错误
func invoke(ctx context.Context, action ActionFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("wave action panicked: %v", r)
		}
	}()
	err = action(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ToggleRandomTargetWave 开关敌人随机目标
type ToggleRandomTargetWave struct {
	*ActionWave
	On bool
}

// NewToggleRandomTargetWave 创建随机目标开关波次
func NewToggleRandomTargetWave(owner Owner, on bool) *ToggleRandomTargetWave {
	w := &ToggleRandomTargetWave{
		ActionWave: NewActionWave(owner, paramWaveDuration, nil, false),
		On:         on,
	}
	w.Action = func(context.Context) error {
		owner.SetToggleRandomTarget(on)
		return nil
	}
	return w
}

// SetXTargetWave 设置敌人水平目标（场地宽度的比例）
type SetXTargetWave struct {
	*ActionWave
	Percent float64
}

// NewSetXTargetWave 创建水平目标设置波次
func NewSetXTargetWave(owner Owner, percent float64) *SetXTargetWave {
	w := &SetXTargetWave{
		ActionWave: NewActionWave(owner, paramWaveDuration, nil, false),
		Percent:    percent,
	}
	w.Action = func(context.Context) error {
		owner.SetXTarget(percent)
		return nil
	}
	return w
}

// SpeedSetWave 设置敌人水平速度
type SpeedSetWave struct {
	*ActionWave
	Speed float64
}

// NewSpeedSetWave 创建速度设置波次
func NewSpeedSetWave(owner Owner, speed float64) *SpeedSetWave {
	w := &SpeedSetWave{
		ActionWave: NewActionWave(owner, paramWaveDuration, nil, false),
		Speed:      speed,
	}
	w.Action = func(context.Context) error {
		owner.SetSpeed(speed)
		return nil
	}
	return w
}
