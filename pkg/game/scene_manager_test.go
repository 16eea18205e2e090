package game

import (
	"errors"
	"testing"
	"time"

	"github.com/decker502/danmaku/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap/zaptest"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	closeCalls   int
	total        time.Duration
	updateErr    error
	closeErr     error
}

// Update records that Update was called and stores the frame time.
func (m *MockScene) Update(ctx *scene.FrameContext) error {
	m.updateCalled = true
	m.total = ctx.Total
	return m.updateErr
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// Close records that Close was called.
func (m *MockScene) Close() error {
	m.closeCalls++
	return m.closeErr
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected current scene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	if err := sm.Update(&scene.FrameContext{Total: 16 * time.Millisecond}); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.total != 16*time.Millisecond {
		t.Errorf("Expected total 16ms, got %v", mockScene.total)
	}
}

// TestSceneManagerUpdateError verifies that scene errors are returned to the caller.
func TestSceneManagerUpdateError(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	want := errors.New("boom")
	sm.SwitchTo(&MockScene{updateErr: want})

	if err := sm.Update(&scene.FrameContext{}); !errors.Is(err, want) {
		t.Errorf("Expected scene error, got %v", err)
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager(nil)
	if err := sm.Update(&scene.FrameContext{}); err != nil {
		t.Errorf("Expected nil error without scene, got %v", err)
	}
	sm.Draw(nil) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerSwitchClosesPrevious 测试切换场景时关闭旧场景
func TestSceneManagerSwitchClosesPrevious(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	scene1 := &MockScene{closeErr: errors.New("close failed")}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.closeCalls != 0 {
		t.Errorf("Expected no close when switching to the same scene, got %d", scene1.closeCalls)
	}

	sm.SwitchTo(scene2)
	if scene1.closeCalls != 1 {
		t.Errorf("Expected previous scene closed once, got %d", scene1.closeCalls)
	}
	if sm.GetCurrentScene() != scene2 {
		t.Error("SwitchTo did not set the current scene correctly")
	}

	_ = sm.Update(&scene.FrameContext{})
	if scene1.updateCalled || !scene2.updateCalled {
		t.Error("Expected only the current scene updated")
	}
}

// TestSceneManagerClose 测试退出时关闭当前场景
func TestSceneManagerClose(t *testing.T) {
	sm := NewSceneManager(zaptest.NewLogger(t))
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	if err := sm.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if mockScene.closeCalls != 1 {
		t.Errorf("Expected Close called once, got %d", mockScene.closeCalls)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no current scene after Close")
	}
}
