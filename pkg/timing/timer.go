// Package timing 提供由帧时钟驱动的周期计时器
//
// 所有时间均为游戏开始后的累计时长（time.Duration），由宿主每帧传入，
// 不直接读取墙上时钟。计时器只在 Scheduler.Update 中被检查，
// 因此同一帧内最多触发一次，错过的多个周期不会补发。
package timing

import (
	"sync"
	"sync/atomic"
	"time"
)

// TickFunc 计时器触发回调，参数为触发时的帧时间
type TickFunc func(now time.Duration)

// Timer 周期计时器
//
// 当 now - lastFired > Interval 时触发一次回调并重置 lastFired。
// Start/Stop 可重复调用，与持有者的生命周期无关。
type Timer struct {
	Interval time.Duration

	onTick  TickFunc
	enabled atomic.Bool

	mu        sync.Mutex
	lastFired time.Duration

	// registered 由 Scheduler.mu 保护
	registered bool
	sched      *Scheduler
}

// NewTimer 创建计时器（未启动）
func NewTimer(interval time.Duration, fn TickFunc) *Timer {
	return &Timer{
		Interval: interval,
		onTick:   fn,
	}
}

// Start 启用计时器并注册到调度器
// lastFired 锚定为调度器最近处理的帧时间
func (t *Timer) Start(s *Scheduler) {
	t.mu.Lock()
	t.lastFired = s.Now()
	t.sched = s
	t.mu.Unlock()

	t.enabled.Store(true)
	s.register(t)
}

// Stop 立即禁用计时器
// 注册表中的条目在下一次 Update 时被清理
func (t *Timer) Stop() {
	t.enabled.Store(false)
}

// Enabled 返回计时器是否处于启用状态
func (t *Timer) Enabled() bool {
	return t.enabled.Load()
}

// LastFired 返回上次触发（或启动锚定）的帧时间
func (t *Timer) LastFired() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastFired
}

// CheckTick 检查是否到达触发时间
//
// 仅当 now - lastFired 严格大于 Interval 时触发，触发后 lastFired = now，
// 所以对同一个 now 重复调用最多触发一次。
//
// 返回：
//   - bool: 本次调用是否触发了回调
func (t *Timer) CheckTick(now time.Duration) bool {
	t.mu.Lock()
	if now-t.lastFired <= t.Interval {
		t.mu.Unlock()
		return false
	}
	t.lastFired = now
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(now)
	}
	return true
}
