package logging

import (
	"testing"

	"github.com/decker502/danmaku/pkg/config"
	"go.uber.org/zap/zapcore"
)

// TestParseLevel 测试日志级别解析
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestBuildConfig 测试控制台/JSON 配置与 verbose
func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		verbose  bool
		encoding string
		level    zapcore.Level
	}{
		{"console", config.LoggingConfig{Level: "warn", Format: "console"}, false, "console", zapcore.WarnLevel},
		{"json", config.LoggingConfig{Level: "error", Format: "json"}, false, "json", zapcore.ErrorLevel},
		{"verbose overrides level", config.LoggingConfig{Level: "error"}, true, "console", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zapCfg := buildConfig(tt.cfg, tt.verbose)
			if zapCfg.Encoding != tt.encoding {
				t.Errorf("Expected encoding %q, got %q", tt.encoding, zapCfg.Encoding)
			}
			if zapCfg.Level.Level() != tt.level {
				t.Errorf("Expected level %v, got %v", tt.level, zapCfg.Level.Level())
			}
		})
	}
}

// TestNew 测试创建日志
func TestNew(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "info", Format: "console"}, false)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer log.Sync()

	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug disabled at info level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info enabled")
	}
}
