// Package logger provides a context-aware structured logger for the
// application, backed by zap with optional file rotation.
package logger

import (
	"context"
	"os"

	"github.com/arthurmdp/bankledger/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging interface the rest of the application depends on.
type Logger interface {
	// With returns a logger based off the root logger and decorated
	// with the given context and arguments.
	With(ctx context.Context, args ...interface{}) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// Sync flushes any buffered log entries.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

// New creates a logger from the application config.
func New(cfg *config.Config) Logger {
	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	sink := zapcore.AddSync(os.Stderr)
	if cfg.Logger.Path != "" {
		sink = zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stderr),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.Logger.Path,
				MaxSize:    cfg.Logger.MaxSizeMB,
				MaxBackups: cfg.Logger.MaxBackups,
				MaxAge:     cfg.Logger.MaxAgeDays,
			}),
		)
	}

	core := zapcore.NewCore(encoder, sink, level)

	return &logger{zap.New(core, zap.AddCaller()).Sugar()}
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

func (l *logger) With(_ context.Context, args ...interface{}) Logger {
	if len(args) > 0 {
		return &logger{l.SugaredLogger.With(args...)}
	}
	return l
}
