// Package logging adapts a zap SugaredLogger to the calculation engine's
// Logger interface so the engine itself stays free of logging dependencies.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements calculation.Logger on top of zap.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// New builds a console zap logger. Verbose enables debug-level output.
func New(verbose bool) (*ZapLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: logger.Sugar()}, nil
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// Sync flushes buffered log entries; call before process exit.
func (l *ZapLogger) Sync() {
	_ = l.s.Sync()
}
