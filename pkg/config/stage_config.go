package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/decker502/danmaku/pkg/embedded"
	"github.com/decker502/danmaku/pkg/wave"
	"gopkg.in/yaml.v3"
)

// DefaultStagesFile 默认关卡配置文件
const DefaultStagesFile = "data/stages.yaml"

// StageConfig 关卡配置
type StageConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Stages    []StageDef      `yaml:"stages"`
}

// PlayfieldConfig 场地尺寸
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StageDef 单个关卡定义
type StageDef struct {
	ID       string  `yaml:"id"`       // 关卡ID，如 "1"
	Name     string  `yaml:"name"`     // 关卡名称
	EnemyHP  float64 `yaml:"enemyHP"`  // 敌人血量，默认 1000
	PlayerHP float64 `yaml:"playerHP"` // 玩家血量，默认 30
	// WaveScript 波次脚本路径，先从磁盘读取，不存在时读取嵌入资源
	WaveScript string `yaml:"waveScript"`
	// Loop 波次序列是否循环，默认 true
	Loop *bool `yaml:"loop"`

	// Script 加载后的脚本文本
	Script string `yaml:"-"`
}

// Looping 返回波次序列是否循环
func (d StageDef) Looping() bool {
	return d.Loop == nil || *d.Loop
}

// LoadStageConfig 加载关卡配置
//
// 参数：
//
//	path - 关卡配置文件路径，先从磁盘读取，不存在时读取嵌入资源
//
// 返回：
//
//	*StageConfig - 解析后的关卡配置，每个关卡的脚本已读取并通过解析校验
//	error - 读取、解析或校验失败
func LoadStageConfig(path string) (*StageConfig, error) {
	data, err := ReadDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config file %s: %w", path, err)
	}

	var cfg StageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage config YAML from %s: %w", path, err)
	}

	applyStageDefaults(&cfg)

	if err := validateStageConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid stage config in %s: %w", path, err)
	}

	for i := range cfg.Stages {
		if err := loadStageScript(&cfg.Stages[i]); err != nil {
			return nil, fmt.Errorf("stage %s: %w", cfg.Stages[i].ID, err)
		}
	}

	return &cfg, nil
}

// applyStageDefaults 为缺失的可选字段设置默认值
func applyStageDefaults(cfg *StageConfig) {
	if cfg.Playfield.Width == 0 {
		cfg.Playfield.Width = PlayfieldWidth
	}
	if cfg.Playfield.Height == 0 {
		cfg.Playfield.Height = PlayfieldHeight
	}
	for i := range cfg.Stages {
		s := &cfg.Stages[i]
		if s.EnemyHP == 0 {
			s.EnemyHP = DefaultEnemyHP
		}
		if s.PlayerHP == 0 {
			s.PlayerHP = DefaultPlayerHP
		}
		if s.Name == "" {
			s.Name = s.ID
		}
	}
}

// validateStageConfig 验证关卡配置的完整性和合法性
func validateStageConfig(cfg *StageConfig) error {
	if cfg.Playfield.Width < 0 || cfg.Playfield.Height < 0 {
		return fmt.Errorf("playfield size cannot be negative, got %vx%v", cfg.Playfield.Width, cfg.Playfield.Height)
	}
	if len(cfg.Stages) == 0 {
		return fmt.Errorf("at least one stage is required")
	}

	seen := make(map[string]bool, len(cfg.Stages))
	for i, s := range cfg.Stages {
		if s.ID == "" {
			return fmt.Errorf("stage %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("stage %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true

		if s.WaveScript == "" {
			return fmt.Errorf("stage %s: waveScript is required", s.ID)
		}
		if s.EnemyHP < 0 || s.PlayerHP < 0 {
			return fmt.Errorf("stage %s: hp cannot be negative", s.ID)
		}
	}
	return nil
}

// loadStageScript 读取关卡脚本并试解析
// 试解析不绑定敌人，只用于尽早发现脚本错误
func loadStageScript(def *StageDef) error {
	data, err := ReadDataFile(def.WaveScript)
	if err != nil {
		return fmt.Errorf("failed to read wave script %s: %w", def.WaveScript, err)
	}
	def.Script = string(data)

	if _, err := wave.NewLoader(nil).Parse(def.Script, nil); err != nil {
		return fmt.Errorf("invalid wave script %s: %w", def.WaveScript, err)
	}
	return nil
}

// ReadDataFile 读取数据文件
// 优先读取磁盘文件，磁盘上不存在时读取嵌入资源
func ReadDataFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if !embedded.IsInitialized() {
		return nil, err
	}
	return embedded.ReadFile(path)
}
