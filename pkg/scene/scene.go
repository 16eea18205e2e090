// Package scene 提供场景对象模型、逐对碰撞检测与延迟增删
//
// Scene 的 children 只在帧边界被结构性修改：帧内（碰撞检测与逐对象更新期间）
// 的添加请求与所有移除请求都先进入缓冲，在本帧更新结束后统一生效。
// AddChild/RemoveChild 可以在任意 goroutine 中调用。
package scene

import (
	"fmt"
	"sync"

	"github.com/decker502/danmaku/pkg/timing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// parallelHitTestThreshold 对象数量低于该值时顺序执行碰撞检测
const parallelHitTestThreshold = 64

// Scene 场景
type Scene struct {
	Width  float64
	Height float64

	timers  *timing.Scheduler
	log     *zap.Logger
	tester  HitTester
	workers int

	mu            sync.Mutex
	children      []Object
	pendingAdd    []Object
	pendingRemove []*GameObject
	removeSet     map[*GameObject]struct{}
	updating      bool
	loaded        bool
}

// Option 场景构造选项
type Option func(*Scene)

// WithHitTestWorkers 设置并行碰撞检测的 worker 数量，<= 1 表示顺序执行
func WithHitTestWorkers(n int) Option {
	return func(s *Scene) {
		s.workers = n
	}
}

// NewScene 创建场景
//
// 参数：
//   - width, height: 场地尺寸
//   - timers: 每帧在更新阶段之后推进的计时器调度器
//   - log: 日志
func NewScene(width, height float64, timers *timing.Scheduler, log *zap.Logger, opts ...Option) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		Width:     width,
		Height:    height,
		timers:    timers,
		log:       log,
		workers:   1,
		children:  make([]Object, 0, 64),
		removeSet: make(map[*GameObject]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timers 返回场景使用的计时器调度器
func (s *Scene) Timers() *timing.Scheduler {
	return s.timers
}

// Logger 返回场景日志
func (s *Scene) Logger() *zap.Logger {
	return s.log
}

// Loaded 返回场景是否已加载
func (s *Scene) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Children 返回当前子对象的快照副本
func (s *Scene) Children() []Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Object, len(s.children))
	copy(out, s.children)
	return out
}

// Len 返回子对象数量（不含待添加对象）
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.children)
}

// Contains 检查对象当前是否在 children 中
func (s *Scene) Contains(obj Object) bool {
	target := obj.Base()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.children {
		if c.Base() == target {
			return true
		}
	}
	return false
}

// AddChild 添加对象
//
// 帧内调用时对象进入待添加列表，本帧结束时加入；
// 帧外调用时立即加入。场景已加载时对象随即被加载。
func (s *Scene) AddChild(obj Object) {
	b := obj.Base()

	s.mu.Lock()
	b.scene = s
	b.removed.Store(false)
	if s.updating {
		s.pendingAdd = append(s.pendingAdd, obj)
		s.mu.Unlock()
		return
	}
	s.children = append(s.children, obj)
	loaded := s.loaded
	s.mu.Unlock()

	if loaded {
		load(obj)
	}
}

// RemoveChild 请求移除对象，在下一次 Update 结束时生效
// 同一对象多次请求只移除一次
func (s *Scene) RemoveChild(obj Object) {
	s.removeObject(obj.Base())
}

func (s *Scene) removeObject(b *GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queueRemoveLocked(b)
}

func (s *Scene) queueRemoveLocked(b *GameObject) {
	if _, queued := s.removeSet[b]; queued {
		return
	}
	s.removeSet[b] = struct{}{}
	s.pendingRemove = append(s.pendingRemove, b)
	b.removed.Store(true)
}

// RemoveIf 请求移除所有满足条件的对象，包括尚在待添加列表中的对象
// pred 在场景锁内调用，不能再访问场景
func (s *Scene) RemoveIf(pred func(Object) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, list := range [][]Object{s.children, s.pendingAdd} {
		for _, c := range list {
			if pred(c) {
				s.queueRemoveLocked(c.Base())
				n++
			}
		}
	}
	return n
}

// Load 加载场景及全部子对象
func (s *Scene) Load() {
	s.mu.Lock()
	s.loaded = true
	snapshot := make([]Object, len(s.children))
	copy(snapshot, s.children)
	s.mu.Unlock()

	for _, c := range snapshot {
		load(c)
	}
}

// Unload 卸载场景及全部子对象
func (s *Scene) Unload() {
	s.mu.Lock()
	s.loaded = false
	snapshot := make([]Object, len(s.children))
	copy(snapshot, s.children)
	s.mu.Unlock()

	for _, c := range snapshot {
		unload(c)
	}
}

// Update 推进一帧
//
// 执行流程：
//  1. 对 children 快照做逐对碰撞检测
//  2. 逐对象 Update
//  3. 推进计时器调度器（可能触发波次切换与子弹生成）
//  4. 应用本帧缓冲的添加与移除
func (s *Scene) Update(ctx *FrameContext) {
	s.mu.Lock()
	s.updating = true
	snapshot := make([]Object, len(s.children))
	copy(snapshot, s.children)
	s.mu.Unlock()

	if ctx.Timers == nil {
		ctx.Timers = s.timers
	}

	s.UpdateHitTest(snapshot)

	for _, c := range snapshot {
		if u, ok := c.(Updatable); ok {
			u.Update(ctx)
		}
	}

	if s.timers != nil {
		s.timers.Update(ctx.Total)
	}

	s.applyPending()
}

// UpdateHitTest 对给定对象集合做逐对碰撞检测
//
// 对每个有序对 (me, other)，当 other 可被击中、me 可发起碰撞、
// 分组相同且包围盒重叠时调用 me.OnCollision(other)。
// 并行时按 me 的行区间切分，同一个 me 只由一个 worker 处理。
func (s *Scene) UpdateHitTest(children []Object) {
	n := len(children)
	if n < 2 {
		return
	}

	workers := s.workers
	if workers <= 1 || n < parallelHitTestThreshold {
		s.hitTestRows(children, 0, n)
		return
	}
	if workers > n {
		workers = n
	}

	rows := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += rows {
		start := start
		end := min(start+rows, n)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("hit test rows [%d,%d): %v", start, end, r)
				}
			}()
			s.hitTestRows(children, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("[Scene] collision handler failed", zap.Error(err))
	}
}

func (s *Scene) hitTestRows(children []Object, start, end int) {
	for i := start; i < end; i++ {
		me := children[i]
		handler, ok := me.(Collidable)
		if !ok {
			continue
		}
		for j, other := range children {
			if i == j {
				continue
			}
			if s.tester.CanHit(me, other) && s.tester.IsHit(me, other) {
				handler.OnCollision(other)
			}
		}
	}
}

// applyPending 应用缓冲的添加与移除
func (s *Scene) applyPending() {
	s.mu.Lock()
	s.updating = false

	added := s.pendingAdd
	s.pendingAdd = nil
	s.children = append(s.children, added...)

	var removed []Object
	var missing []*GameObject
	if len(s.pendingRemove) > 0 {
		kept := s.children[:0]
		found := make(map[*GameObject]bool, len(s.pendingRemove))
		for _, c := range s.children {
			b := c.Base()
			if _, ok := s.removeSet[b]; ok && !found[b] {
				found[b] = true
				b.scene = nil
				removed = append(removed, c)
				continue
			}
			kept = append(kept, c)
		}
		for i := len(kept); i < len(s.children); i++ {
			s.children[i] = nil
		}
		s.children = kept

		for _, b := range s.pendingRemove {
			if !found[b] {
				missing = append(missing, b)
			}
		}
		s.pendingRemove = nil
		s.removeSet = make(map[*GameObject]struct{})
	}
	loaded := s.loaded
	s.mu.Unlock()

	if loaded {
		for _, c := range added {
			load(c)
		}
		for _, c := range removed {
			unload(c)
		}
	}
	for _, b := range missing {
		s.log.Error("[Scene] remove child failed: object not in scene",
			zap.String("name", b.Name),
			zap.String("tag", b.Tag))
	}
}

// Draw 绘制全部子对象
func (s *Scene) Draw(r Renderer) {
	for _, c := range s.Children() {
		if d, ok := c.(Drawable); ok {
			d.Draw(r)
			continue
		}
		b := c.Base()
		if b.Sprite != nil {
			r.DrawRect(b.X, b.Y, b.W, b.H, b.Sprite.Color)
		}
	}
}

func load(obj Object) {
	if l, ok := obj.(Loadable); ok {
		l.Load()
	}
}

func unload(obj Object) {
	if l, ok := obj.(Loadable); ok {
		l.Unload()
	}
}
