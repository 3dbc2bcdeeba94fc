package logger

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"

	"parent-teacher-bridge/backend/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := NewLogger(&config.LogConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("format=%s: NewLogger 失败: %v", format, err)
		}
		l.Debug("test")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "verbose", Format: "json"}); err == nil {
		t.Error("无效日志级别应返回错误")
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  gormlogger.LogLevel
	}{
		{"debug", gormlogger.Info},
		{"info", gormlogger.Warn},
		{"warn", gormlogger.Warn},
		{"error", gormlogger.Error},
		{"", gormlogger.Error},
	}
	for _, tt := range tests {
		if got := GormLogLevel(tt.level); got != tt.want {
			t.Errorf("GormLogLevel(%q) = %v, 期望 %v", tt.level, got, tt.want)
		}
	}
}
