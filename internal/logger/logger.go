package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger instance used across all packages
var Log *zap.Logger

// Init sets up the global logger. Safe to call more than once.
func Init() {
	if Log != nil {
		return
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		// Fall back to a no-op logger rather than failing engine startup
		Log = zap.NewNop()
		return
	}
	Log = logger
}

// SetDebug switches the global log level at runtime
func SetDebug(debug bool) {
	if Log == nil {
		Init()
	}
	config := zap.NewDevelopmentConfig()
	if !debug {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if logger, err := config.Build(); err == nil {
		Log = logger
	}
}
