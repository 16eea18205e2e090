package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath 默认应用配置文件路径
const DefaultConfigPath = "config/game.toml"

// Config 应用配置
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title string `toml:"title"`
	// Scale 窗口相对于场地尺寸的缩放
	Scale float64 `toml:"scale"`
}

// GameConfig 玩法配置
type GameConfig struct {
	// TPS 每秒逻辑帧数
	TPS int `toml:"tps"`
	// HitTestWorkers 并行碰撞检测的 worker 数，<= 1 表示顺序执行
	HitTestWorkers int `toml:"hit_test_workers"`
	// StagesFile 关卡配置文件
	StagesFile string `toml:"stages_file"`
	// DebugPlayerHP 启用后玩家使用调试血量
	DebugPlayerHP bool `toml:"debug_player_hp"`
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `toml:"seed"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load 加载应用配置
// 文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Danmaku",
			Scale: 1,
		},
		Game: GameConfig{
			TPS:            60,
			HitTestWorkers: 4,
			StagesFile:     DefaultStagesFile,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.Game.TPS <= 0 {
		return fmt.Errorf("game.tps must be positive, got %d", c.Game.TPS)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window.scale must be positive, got %v", c.Window.Scale)
	}
	if c.Game.StagesFile == "" {
		return fmt.Errorf("game.stages_file is required")
	}
	return nil
}
