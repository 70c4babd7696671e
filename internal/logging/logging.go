// Package logging builds the zap logger used across geminichat. Logs go to a
// rotating file because the TUI owns the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/diogo/geminichat/internal/config"
)

// New returns a JSON logger writing to the rotating file described by cfg
func New(cfg config.LogConfig) (*zap.Logger, error) {
	path, err := config.GetLogPath(cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return NewWithWriter(zapcore.AddSync(writer), ParseLevel(cfg.Level)), nil
}

// NewWithWriter returns a JSON logger writing to ws at the given level
func NewWithWriter(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newEncoder(), ws, level)
	return zap.New(core)
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// ParseLevel maps a config level name to a zap level. Unknown names
// fall back to info.
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// LogDuration lets you do: defer logging.LogDuration(logger, "name")()
func LogDuration(logger *zap.Logger, name string, fields ...zap.Field) func() {
	start := time.Now()

	return func() {
		all := append([]zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}, fields...)
		logger.Debug("function timed", all...)
	}
}
