package logger

import (
	"os"

	"github.com/cjl-232/cryptcord-server/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger. The zero value is a silent sink, so
// tests can pass logger.Logger{} without wiring anything up.
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var zapCfg zap.Config
	if cfg.LoggerMode.Prod {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LoggerMode.Level != "" {
		level, err := zapcore.ParseLevel(cfg.LoggerMode.Level)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

func (l Logger) Debug(msg string, keysAndValues ...any) {
	if l.sugar != nil {
		l.sugar.Debugw(msg, keysAndValues...)
	}
}

func (l Logger) Info(msg string, keysAndValues ...any) {
	if l.sugar != nil {
		l.sugar.Infow(msg, keysAndValues...)
	}
}

func (l Logger) Warn(msg string, keysAndValues ...any) {
	if l.sugar != nil {
		l.sugar.Warnw(msg, keysAndValues...)
	}
}

func (l Logger) Error(msg string, keysAndValues ...any) {
	if l.sugar != nil {
		l.sugar.Errorw(msg, keysAndValues...)
	}
}

func (l Logger) Debugf(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Debugf(format, args...)
	}
}

func (l Logger) Infof(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Infof(format, args...)
	}
}

func (l Logger) Warnf(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Warnf(format, args...)
	}
}

func (l Logger) Errorf(format string, args ...any) {
	if l.sugar != nil {
		l.sugar.Errorf(format, args...)
	}
}

// Fatalf logs the message and exits the process.
func (l Logger) Fatalf(format string, args ...any) {
	if l.sugar == nil {
		os.Exit(1)
	}
	l.sugar.Fatalf(format, args...)
}

func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
