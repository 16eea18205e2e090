package entities

import (
	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/scene"
	"github.com/decker502/danmaku/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// 玩家按键
const (
	KeyLeft  = ebiten.KeyA
	KeyRight = ebiten.KeyD
	KeyUp    = ebiten.KeyW
	KeyDown  = ebiten.KeyS
	KeyFire  = ebiten.KeyJ
)

// Player 玩家
type Player struct {
	scene.GameObject

	SpeedX float64
	SpeedY float64
	// FireFrame 按住射击键时每 FireFrame+1 帧发射一次
	FireFrame int

	stage     Stage
	fireTimer int
}

// NewPlayer 创建玩家
func NewPlayer(stage Stage) *Player {
	p := &Player{
		GameObject: scene.NewGameObject(0, 0, config.PlayerWidth, config.PlayerHeight),
		SpeedX:     config.PlayerSpeedX,
		SpeedY:     config.PlayerSpeedY,
		FireFrame:  config.PlayerFireFrame,
		stage:      stage,
	}
	p.Name = "Player"
	p.Tag = TagPlayer
	p.IsHitVisible = true
	p.IsHittedVisible = true
	p.Sprite = scene.NewRectSprite(colornames.Red)
	return p
}

// Load 放置到出生点
func (p *Player) Load() {
	s := p.ParentScene()
	p.W = config.PlayerWidth
	p.H = config.PlayerHeight
	p.X = s.Width/2 - p.W/2
	p.Y = s.Height*config.PlayerSpawnYRatio - p.H/2
}

func (p *Player) Unload() {}

// Update 处理移动与射击
func (p *Player) Update(ctx *scene.FrameContext) {
	p.fireTimer++

	keys := ctx.Keys
	if keys.IsDown(KeyLeft) {
		p.X -= p.SpeedX
	}
	if keys.IsDown(KeyRight) {
		p.X += p.SpeedX
	}
	if keys.IsDown(KeyUp) {
		p.Y -= p.SpeedY
	}
	if keys.IsDown(KeyDown) {
		p.Y += p.SpeedY
	}

	if s := p.ParentScene(); s != nil {
		p.X = utils.Clamp(p.X, 0, s.Width-p.W)
		p.Y = utils.Clamp(p.Y, 0, s.Height-p.H)
	}

	if keys.IsDown(KeyFire) {
		p.Fire()
	}
}

// Fire 按射击节奏发射子弹
func (p *Player) Fire() {
	if p.fireTimer > p.FireFrame {
		p.fireTimer = 0
	}
	if p.fireTimer != 0 {
		return
	}

	s := p.ParentScene()
	if s == nil {
		return
	}
	cx, _ := p.Center()
	s.AddChild(NewPlayerBullet(cx, p.Y-config.PlayerBulletOffsetY))
}

// OnCollision 撞上敌人或被敌方子弹击中
func (p *Player) OnCollision(other scene.Object) {
	switch o := other.(type) {
	case *Enemy:
		p.stage.PlayerHitted(o.BodyDamage, 0)
	case *EnemyBullet:
		p.stage.PlayerHitted(o.Damage, 0)
		o.RemoveMe()
	}
}

// Draw 绘制玩家与下方的血条
func (p *Player) Draw(r scene.Renderer) {
	if p.Sprite != nil {
		r.DrawRect(p.X, p.Y, p.W, p.H, p.Sprite.Color)
	}

	hp, maxHP := p.stage.PlayerHP()
	ratio := 0.0
	if maxHP > 0 {
		ratio = utils.Clamp(hp/maxHP, 0, 1)
	}
	x := p.X - config.HPBarWidth/2 + p.W/2
	y := p.Y + p.H + config.HPBarGap
	r.DrawRect(x, y, config.HPBarWidth, config.HPBarHeight, colornames.White)
	r.DrawRect(x, y, config.HPBarWidth*ratio, config.HPBarHeight, colornames.Red)
}
