package timing

import (
	"context"
	"sync"
	"time"
)

// Scheduler 计时器注册表
//
// 每帧由模拟线程调用一次 Update。注册/注销可以在任意 goroutine 中进行，
// Update 遍历的是注册表的快照副本，回调中启动或停止计时器不会破坏本轮遍历。
type Scheduler struct {
	mu     sync.Mutex
	timers []*Timer
	now    time.Duration
}

// NewScheduler 创建空的计时器调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make([]*Timer, 0, 8),
	}
}

// Now 返回最近一次 Update 处理的帧时间
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Len 返回注册表中的计时器数量（包含待清理的已停止计时器）
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) register(t *Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.registered {
		return
	}
	t.registered = true
	s.timers = append(s.timers, t)
}

// Update 推进所有计时器
//
// 执行流程：
//  1. 记录当前帧时间
//  2. 复制注册表快照
//  3. 对快照中每个计时器：已停止的从注册表移除并跳过，启用的调用 CheckTick
func (s *Scheduler) Update(now time.Duration) {
	s.mu.Lock()
	s.now = now
	snapshot := make([]*Timer, len(s.timers))
	copy(snapshot, s.timers)
	s.mu.Unlock()

	pruned := false
	for _, t := range snapshot {
		if !t.Enabled() {
			pruned = true
			continue
		}
		t.CheckTick(now)
	}

	if pruned {
		s.prune()
	}
}

// prune 移除已停止的计时器
func (s *Scheduler) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.Enabled() {
			kept = append(kept, t)
			continue
		}
		t.registered = false
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}

// Sleep 可中断的休眠
// ctx 取消时立即返回 ctx.Err()，正常到期返回 nil
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
