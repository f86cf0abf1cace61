// Package logger owns the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.Logger
)

// Init builds the global logger. Debug mode uses the colored development
// encoder; production mode emits ISO-8601 JSON.
func Init(debug bool) {
	mu.Lock()
	defer mu.Unlock()

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	built, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = built
}

// Get returns the global logger, initializing it lazily from the DEBUG
// environment variable when Init was never called.
func Get() *zap.Logger {
	mu.Lock()
	initialized := log != nil
	mu.Unlock()
	if !initialized {
		Init(os.Getenv("DEBUG") == "true")
	}
	return log
}

// Named returns a child logger scoped to a component name.
func Named(name string) *zap.Logger {
	return Get().Named(name)
}

// Info logs at info level on the global logger.
func Info(msg string, fields ...zap.Field) { Get().Info(msg, fields...) }

// Debug logs at debug level on the global logger.
func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }

// Warn logs at warn level on the global logger.
func Warn(msg string, fields ...zap.Field) { Get().Warn(msg, fields...) }

// Error logs at error level on the global logger.
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }

// Fatal logs at fatal level and exits.
func Fatal(msg string, fields ...zap.Field) { Get().Fatal(msg, fields...) }

// Sync flushes buffered entries. Safe to call on shutdown paths.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
}
