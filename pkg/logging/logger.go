// Package logging 根据配置构建 zap 日志
package logging

import (
	"github.com/decker502/danmaku/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建日志
//
// Format 为 "json" 时使用生产配置，否则使用带颜色的控制台格式。
// 无法识别的级别按 info 处理；verbose 强制使用 debug 级别。
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zapCfg := buildConfig(cfg, verbose)
	return zapCfg.Build()
}

func buildConfig(cfg config.LoggingConfig, verbose bool) zap.Config {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = zapcore.DebugLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg
}

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
