package entities

import (
	"image/color"
	"sync"
)

// hitCall 一次命中上报
type hitCall struct {
	damage, score float64
}

// mockStage 记录命中上报的测试用关卡
type mockStage struct {
	mu         sync.Mutex
	enemyHits  []hitCall
	playerHits []hitCall
	hp, maxHP  float64
}

func newMockStage() *mockStage {
	return &mockStage{hp: 30, maxHP: 30}
}

func (m *mockStage) EnemyHitted(damage, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enemyHits = append(m.enemyHits, hitCall{damage, score})
}

func (m *mockStage) PlayerHitted(damage, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerHits = append(m.playerHits, hitCall{damage, score})
}

func (m *mockStage) PlayerHP() (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hp, m.maxHP
}

// drawnRect 一次矩形绘制
type drawnRect struct {
	x, y, w, h float64
	c          color.Color
}

// recordingRenderer 记录绘制调用
type recordingRenderer struct {
	rects []drawnRect
}

func (r *recordingRenderer) DrawRect(x, y, w, h float64, c color.Color) {
	r.rects = append(r.rects, drawnRect{x, y, w, h, c})
}
