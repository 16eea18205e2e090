package config

// 布局与玩法常量
// 本文件定义了场地尺寸、实体尺寸与速度等参数，坐标单位为像素，速度单位为 像素/帧

// Playfield Configuration (场地配置)
const (
	// PlayfieldWidth 是默认场地宽度
	PlayfieldWidth = 385.0

	// PlayfieldHeight 是默认场地高度
	PlayfieldHeight = 600.0
)

// Enemy Configuration (敌人配置)
const (
	// EnemyWidth, EnemyHeight 是敌人包围盒尺寸
	EnemyWidth  = 48.0
	EnemyHeight = 48.0

	// EnemySpawnY 是敌人出生时的 Y 坐标，X 居中
	EnemySpawnY = 60.0

	// EnemyDefaultSpeed 是敌人默认水平速度
	EnemyDefaultSpeed = 3.0

	// EnemyBodyDamage 是玩家撞上敌人时每帧受到的伤害
	EnemyBodyDamage = 20.0

	// EnemyRandomTargetMin, EnemyRandomTargetMax 随机目标占场地宽度的比例范围
	EnemyRandomTargetMin = 0.01
	EnemyRandomTargetMax = 0.99
)

// Player Configuration (玩家配置)
const (
	PlayerWidth  = 10.0
	PlayerHeight = 10.0

	// PlayerSpawnYRatio 玩家出生点中心位于场地高度的比例
	PlayerSpawnYRatio = 0.75

	PlayerSpeedX = 3.0
	PlayerSpeedY = 2.0

	// PlayerFireFrame 按住射击键时每 PlayerFireFrame+1 帧发射一次
	PlayerFireFrame = 4

	// PlayerBulletOffsetY 子弹生成位置相对玩家顶部的偏移
	PlayerBulletOffsetY = 20.0

	// HPBarWidth, HPBarHeight, HPBarGap 玩家血条尺寸与距玩家底部的间距
	HPBarWidth  = 50.0
	HPBarHeight = 3.0
	HPBarGap    = 4.0
)

// Bullet Configuration (子弹配置)
const (
	PlayerBulletWidth  = 3.0
	PlayerBulletHeight = 20.0
	PlayerBulletSpeed  = 10.0
	PlayerBulletDamage = 10.0
	// PlayerBulletPoint 击中敌人时的基础得分，实际得分乘以连击数
	PlayerBulletPoint = 10.0

	// EnemyBulletDamage 未指定伤害时敌方子弹的默认伤害
	EnemyBulletDamage = 5.0
	// EnemyBulletSize 未指定尺寸时敌方子弹的默认边长
	EnemyBulletSize = 7.0
)

// Stage Configuration (关卡配置)
const (
	DefaultEnemyHP  = 1000.0
	DefaultPlayerHP = 30.0
	// DebugPlayerHP 调试模式下的玩家血量
	DebugPlayerHP = 5000.0
)
