package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/scene"
	"go.uber.org/zap"
)

// ErrNoMoreStages 已经没有下一关
var ErrNoMoreStages = errors.New("no more stages")

// StageManager 关卡管理器
//
// 按配置顺序推进关卡，持有跨关卡累计的分数，并记录最近一次结束结果。
type StageManager struct {
	field *scene.Scene
	defs  []config.StageDef
	log   *zap.Logger

	rng      *rand.Rand
	playerHP float64

	scoreMu sync.Mutex
	score   float64

	mu      sync.Mutex
	index   int
	current *Stage
	last    *StageResult
}

// ManagerOption 关卡管理器构造选项
type ManagerOption func(*StageManager)

// WithRand 设置敌人随机目标使用的随机源
func WithRand(rng *rand.Rand) ManagerOption {
	return func(m *StageManager) {
		m.rng = rng
	}
}

// WithPlayerHP 覆盖所有关卡的玩家初始血量
func WithPlayerHP(hp float64) ManagerOption {
	return func(m *StageManager) {
		m.playerHP = hp
	}
}

// NewStageManager 创建关卡管理器
func NewStageManager(field *scene.Scene, defs []config.StageDef, log *zap.Logger, opts ...ManagerOption) *StageManager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &StageManager{
		field: field,
		defs:  defs,
		log:   log,
		index: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddScore 累加分数
func (m *StageManager) AddScore(delta float64) {
	m.scoreMu.Lock()
	defer m.scoreMu.Unlock()
	m.score += delta
}

// Score 返回累计分数
func (m *StageManager) Score() float64 {
	m.scoreMu.Lock()
	defer m.scoreMu.Unlock()
	return m.score
}

// StartNext 停止当前关卡并开始下一关
//
// 返回：
//   - ErrNoMoreStages: 已经是最后一关
//   - 其他 error: 关卡启动失败，错误链中包含脚本解析错误
func (m *StageManager) StartNext() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.stopLocked(); err != nil {
		m.log.Warn("[StageManager] previous stage stopped with error", zap.Error(err))
	}

	if m.index+1 >= len(m.defs) {
		return ErrNoMoreStages
	}
	m.index++
	def := m.defs[m.index]

	st := NewStage(def, m.field, m, m.rng, m.log)
	if m.playerHP > 0 {
		st.SetPlayerHP(m.playerHP)
	}
	st.OnFinished(m.stageFinished)
	if err := st.Start(); err != nil {
		return fmt.Errorf("start stage %s: %w", def.ID, err)
	}

	m.current = st
	m.last = nil
	m.log.Info("[StageManager] stage started",
		zap.Int("index", m.index),
		zap.String("id", def.ID))
	return nil
}

// Stop 停止当前关卡，不产生结束结果
func (m *StageManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopLocked()
}

func (m *StageManager) stopLocked() error {
	st := m.current
	m.current = nil
	if st == nil {
		return nil
	}
	st.OnFinished(nil)
	return st.Stop()
}

// Restart 从第一关重新开始，分数清零
func (m *StageManager) Restart() error {
	m.mu.Lock()
	if err := m.stopLocked(); err != nil {
		m.log.Warn("[StageManager] stage stopped with error", zap.Error(err))
	}
	m.index = -1
	m.last = nil
	m.mu.Unlock()

	m.scoreMu.Lock()
	m.score = 0
	m.scoreMu.Unlock()

	m.log.Info("[StageManager] restart")
	return m.StartNext()
}

// stageFinished 记录关卡结束结果
func (m *StageManager) stageFinished(result StageResult) {
	score := m.Score()

	m.mu.Lock()
	m.last = &result
	m.mu.Unlock()

	fields := []zap.Field{
		zap.String("id", result.StageID),
		zap.Stringer("state", result.State),
		zap.Float64("score", score),
	}
	if result.Err != nil {
		m.log.Error("[StageManager] stage finished", append(fields, zap.Error(result.Err))...)
		return
	}
	m.log.Info("[StageManager] stage finished", fields...)
}

// Current 返回当前关卡，没有关卡时为 nil
func (m *StageManager) Current() *Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Index 返回当前关卡下标，尚未开始时为 -1
func (m *StageManager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// HasNext 返回是否还有下一关
func (m *StageManager) HasNext() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index+1 < len(m.defs)
}

// LastResult 返回最近一次关卡结束结果
func (m *StageManager) LastResult() (StageResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return StageResult{}, false
	}
	return *m.last, true
}
