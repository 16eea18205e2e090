package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/entities"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/wave"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FinishState 关卡结束状态
type FinishState int

const (
	// FinishNone 关卡尚未结束
	FinishNone FinishState = iota
	// FinishSuccess 敌人被击败
	FinishSuccess
	// FinishFailed 玩家被击败
	FinishFailed
	// FinishStopped 关卡因波次故障中止
	FinishStopped
)

func (s FinishState) String() string {
	switch s {
	case FinishNone:
		return "none"
	case FinishSuccess:
		return "success"
	case FinishFailed:
		return "failed"
	case FinishStopped:
		return "stopped"
	default:
		return fmt.Sprintf("FinishState(%d)", int(s))
	}
}

// StageResult 关卡结束结果
type StageResult struct {
	StageID string
	State   FinishState
	// Err 导致关卡中止的错误，仅 FinishStopped 时非空
	Err error
}

// ScoreKeeper 累计分数
type ScoreKeeper interface {
	AddScore(delta float64)
}

// StageStatus 关卡状态快照，供 HUD 显示
type StageStatus struct {
	PlayerHP    float64
	MaxPlayerHP float64
	EnemyHP     float64
	MaxEnemyHP  float64
	Combo       int
	Running     bool
}

// Stage 关卡
//
// 负责生成敌人与玩家，并根据碰撞上报维护血量与连击。
// EnemyHitted/PlayerHitted 可能由并行碰撞检测调用，内部以互斥锁串行化；
// 任一方血量归零时关卡停止，结束通知只发送一次。
type Stage struct {
	ID   string
	Name string

	def    config.StageDef
	field  *scene.Scene
	scores ScoreKeeper
	loader *wave.Loader
	rng    *rand.Rand
	log    *zap.Logger

	// playerHP 覆盖配置中的玩家血量，0 表示使用配置
	playerHP float64

	mu         sync.Mutex
	hp         float64
	maxHP      float64
	enemyHP    float64
	maxEnemyHP float64
	combo      int
	running    bool
	enemy      *entities.Enemy
	player     *entities.Player
	onFinished func(StageResult)
}

// NewStage 创建关卡
//
// 参数：
//   - def: 关卡定义，Script 为空时按 WaveScript 读取脚本
//   - field: 承载敌人、玩家与子弹的场景
//   - scores: 分数累计，通常是 StageManager
//   - rng: 敌人随机目标使用的随机源，可以为 nil
//   - log: 日志
func NewStage(def config.StageDef, field *scene.Scene, scores ScoreKeeper, rng *rand.Rand, log *zap.Logger) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("stage", def.ID))
	return &Stage{
		ID:     def.ID,
		Name:   def.Name,
		def:    def,
		field:  field,
		scores: scores,
		loader: wave.NewLoader(log),
		rng:    rng,
		log:    log,
	}
}

// SetPlayerHP 覆盖玩家初始血量，必须在 Start 之前调用
func (st *Stage) SetPlayerHP(hp float64) {
	st.playerHP = hp
}

// OnFinished 设置结束通知
func (st *Stage) OnFinished(fn func(StageResult)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onFinished = fn
}

// Start 开始关卡
//
// 执行流程：
//  1. 重置血量与连击
//  2. 创建敌人并以其为 owner 解析波次脚本
//  3. 创建玩家，二者加入场景（敌人加载时启动波次）
//
// 返回：
//   - error: 关卡已在运行，或脚本读取/解析失败（可用 errors.As 取得 *wave.ParseError）
func (st *Stage) Start() error {
	st.mu.Lock()
	running := st.running
	st.mu.Unlock()
	if running {
		return fmt.Errorf("stage %s is already running", st.ID)
	}

	script, err := st.script()
	if err != nil {
		return fmt.Errorf("stage %s: %w", st.ID, err)
	}

	enemy := entities.NewEnemy(st, st.rng, st.log)
	waves, err := st.loader.Parse(script, enemy)
	if err != nil {
		return fmt.Errorf("stage %s: %w", st.ID, err)
	}
	enemy.UseWaves(waves, st.def.Looping())
	enemy.OnWaveFault = st.waveFault

	player := entities.NewPlayer(st)

	st.mu.Lock()
	st.maxHP = st.def.PlayerHP
	if st.playerHP > 0 {
		st.maxHP = st.playerHP
	}
	st.hp = st.maxHP
	st.maxEnemyHP = st.def.EnemyHP
	st.enemyHP = st.maxEnemyHP
	st.combo = 0
	st.enemy = enemy
	st.player = player
	st.running = true
	st.mu.Unlock()

	st.field.AddChild(enemy)
	st.field.AddChild(player)

	st.log.Info("[Stage] started",
		zap.String("name", st.Name),
		zap.Int("waves", len(waves)),
		zap.Float64("enemyHP", st.def.EnemyHP),
		zap.Float64("playerHP", st.maxHP))
	return nil
}

func (st *Stage) script() (string, error) {
	if st.def.Script != "" || st.def.WaveScript == "" {
		return st.def.Script, nil
	}
	data, err := config.ReadDataFile(st.def.WaveScript)
	if err != nil {
		return "", fmt.Errorf("failed to read wave script %s: %w", st.def.WaveScript, err)
	}
	return string(data), nil
}

// EnemyHitted 敌人被击中：连击加一，扣血，得分 score×连击
func (st *Stage) EnemyHitted(damage, score float64) {
	st.hit(func() {
		st.combo++
		st.enemyHP -= damage
		st.scores.AddScore(score * float64(st.combo))
	})
}

// PlayerHitted 玩家被击中：连击清零，扣血，得分 score×连击
func (st *Stage) PlayerHitted(damage, score float64) {
	st.hit(func() {
		st.combo = 0
		st.hp -= damage
		st.scores.AddScore(score * float64(st.combo))
	})
}

// hit 在锁内应用命中效果并检查结束条件
// 关卡结束时在锁外停止关卡并发送通知
func (st *Stage) hit(apply func()) {
	st.mu.Lock()
	if !st.running {
		st.mu.Unlock()
		return
	}
	apply()
	state := st.checkLocked()
	if state == FinishNone {
		st.mu.Unlock()
		return
	}
	enemy, player := st.detachLocked()
	notify := st.onFinished
	st.mu.Unlock()

	st.finish(state, nil, enemy, player, notify)
}

// checkLocked 将血量限制为非负并判断胜负，玩家阵亡优先
func (st *Stage) checkLocked() FinishState {
	st.hp = max(st.hp, 0)
	st.enemyHP = max(st.enemyHP, 0)
	switch {
	case st.hp <= 0:
		return FinishFailed
	case st.enemyHP <= 0:
		return FinishSuccess
	default:
		return FinishNone
	}
}

func (st *Stage) detachLocked() (*entities.Enemy, *entities.Player) {
	enemy, player := st.enemy, st.player
	st.running = false
	st.enemy = nil
	st.player = nil
	return enemy, player
}

// waveFault 波次故障视为致命错误，关卡以 FinishStopped 结束
func (st *Stage) waveFault(err error) {
	st.mu.Lock()
	if !st.running {
		st.mu.Unlock()
		return
	}
	enemy, player := st.detachLocked()
	notify := st.onFinished
	st.mu.Unlock()

	st.log.Error("[Stage] wave fault, stopping stage", zap.Error(err))
	st.finish(FinishStopped, err, enemy, player, notify)
}

func (st *Stage) finish(state FinishState, cause error, enemy *entities.Enemy, player *entities.Player, notify func(StageResult)) {
	if err := st.teardown(enemy, player); err != nil {
		cause = multierr.Append(cause, err)
	}
	st.log.Info("[Stage] finished", zap.Stringer("state", state))
	if notify != nil {
		notify(StageResult{StageID: st.ID, State: state, Err: cause})
	}
}

// Stop 停止关卡并移除敌人、玩家与全部子弹
// 重复调用无效果，不发送结束通知
func (st *Stage) Stop() error {
	st.mu.Lock()
	if !st.running {
		st.mu.Unlock()
		return nil
	}
	enemy, player := st.detachLocked()
	st.mu.Unlock()

	st.log.Info("[Stage] stopped")
	return st.teardown(enemy, player)
}

func (st *Stage) teardown(enemy *entities.Enemy, player *entities.Player) error {
	var err error
	if enemy != nil {
		err = multierr.Append(err, enemy.StopWaves())
		enemy.RemoveMe()
	}
	if player != nil {
		player.RemoveMe()
	}
	st.field.RemoveIf(func(obj scene.Object) bool {
		switch obj.(type) {
		case *entities.PlayerBullet, *entities.EnemyBullet:
			return true
		}
		return false
	})
	return err
}

// PlayerHP 返回玩家当前血量与最大血量
func (st *Stage) PlayerHP() (float64, float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.hp, st.maxHP
}

// Running 返回关卡是否在进行中
func (st *Stage) Running() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.running
}

// Status 返回关卡状态快照
func (st *Stage) Status() StageStatus {
	st.mu.Lock()
	defer st.mu.Unlock()
	return StageStatus{
		PlayerHP:    st.hp,
		MaxPlayerHP: st.maxHP,
		EnemyHP:     st.enemyHP,
		MaxEnemyHP:  st.maxEnemyHP,
		Combo:       st.combo,
		Running:     st.running,
	}
}

// Enemy 返回当前敌人，关卡未运行时为 nil
func (st *Stage) Enemy() *entities.Enemy {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.enemy
}

// Player 返回当前玩家，关卡未运行时为 nil
func (st *Stage) Player() *entities.Player {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.player
}
