package wave

import (
	"sync"
	"time"

	"github.com/decker502/danmaku/pkg/timing"
	"go.uber.org/zap"
)

// TickInterval 调度器检查波次切换的计时器间隔
const TickInterval = time.Millisecond

// Scheduler 波次调度器
//
// 每次 Tick 比较“当前波次已运行时长”与“当前波次时长”，
// 严格大于时停止当前波次（等待其退出）并启动下一个。
// 非循环模式下所有波次启动后不再前进；循环模式下游标回到 0。
// 任何波次返回的错误都是致命的：调度器停止前进并通过 OnFault 上报。
type Scheduler struct {
	Loop bool
	// OnFault 波次出错时调用，在调度器锁外执行
	OnFault func(err error)

	log *zap.Logger

	mu        sync.Mutex
	waves     []Wave
	next      int
	current   Wave
	startedAt time.Duration
	running   bool
	fault     error
	timer     *timing.Timer
}

// NewScheduler 创建波次调度器
func NewScheduler(waves []Wave, loop bool, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Loop:  loop,
		log:   log,
		waves: waves,
	}
}

// Waves 返回波次列表
func (s *Scheduler) Waves() []Wave {
	return s.waves
}

// Start 在计时器调度器上启动驱动计时器
// 尚未启动过任何波次时，以当前时间作为起点
func (s *Scheduler) Start(timers *timing.Scheduler) {
	s.mu.Lock()
	if s.timer == nil {
		s.timer = timing.NewTimer(TickInterval, s.Tick)
	}
	if s.current == nil {
		s.startedAt = timers.Now()
	}
	s.running = true
	t := s.timer
	s.mu.Unlock()

	t.Start(timers)
}

// Tick 检查是否需要切换到下一个波次
func (s *Scheduler) Tick(now time.Duration) {
	s.mu.Lock()
	if !s.running || s.fault != nil || len(s.waves) == 0 {
		s.mu.Unlock()
		return
	}
	if s.next >= len(s.waves) {
		if !s.Loop {
			s.mu.Unlock()
			return
		}
		s.next = 0
	}

	var d time.Duration
	if s.current != nil {
		d = s.current.Duration()
	}
	if now-s.startedAt <= d {
		s.mu.Unlock()
		return
	}

	index := s.next
	next := s.waves[index]
	var err error
	if s.current != nil {
		err = s.current.Stop()
	}
	if err == nil {
		err = next.Start()
	}
	s.current = next
	s.startedAt = now
	s.next++
	if err != nil {
		s.fault = err
		s.running = false
	}
	onFault := s.OnFault
	s.mu.Unlock()

	if err != nil {
		s.log.Error("[WaveScheduler] wave failed, scheduler halted",
			zap.Int("index", index),
			zap.Error(err))
		if onFault != nil {
			onFault(err)
		}
		return
	}
	s.log.Debug("[WaveScheduler] wave started",
		zap.Int("index", index),
		zap.Duration("duration", next.Duration()),
		zap.Duration("at", now))
}

// Stop 停止驱动计时器与当前波次，等待异步任务退出
// 返回当前波次的错误
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	s.running = false
	cur := s.current
	t := s.timer
	s.mu.Unlock()

	if t != nil {
		t.Stop()
	}
	if cur == nil {
		return nil
	}
	return cur.Stop()
}

// Reset 回到初始状态，需要先 Stop
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = 0
	s.current = nil
	s.startedAt = 0
	s.fault = nil
}

// NextIndex 返回下一个要启动的波次下标
func (s *Scheduler) NextIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Current 返回当前波次
func (s *Scheduler) Current() Wave {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Exhausted 非循环模式下所有波次都已启动
func (s *Scheduler) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.Loop && s.next >= len(s.waves)
}

// Fault 返回导致调度器停止的错误
func (s *Scheduler) Fault() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}
