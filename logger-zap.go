//go:build !tinygo

package digiscope

import (
	"go.uber.org/zap"
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		return
	}
	globalLogger = NewZapLogger(l)
}

// zapLogger forwards scope messages to a zap.Logger.
type zapLogger struct {
	l *zap.Logger
}

// NewZapLogger wraps l so it can be passed to SetLogger.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		return discard{}
	}
	return &zapLogger{l: l.Named("digiscope")}
}

func (z *zapLogger) Debug(msg string) { z.l.Debug(msg) }
func (z *zapLogger) Info(msg string)  { z.l.Info(msg) }
func (z *zapLogger) Warn(msg string)  { z.l.Warn(msg) }
func (z *zapLogger) Error(msg string) { z.l.Error(msg) }
