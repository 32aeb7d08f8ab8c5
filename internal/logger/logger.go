package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the minimal structured logging surface used across the service.
// Every entry carries a short machine-readable event tag alongside the
// human-readable message.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

// Zap is the production Logger backed by uber-go/zap.
type Zap struct {
	log *zap.Logger
}

// New builds a zap-backed logger at the given level. Unknown levels fall
// back to info.
func New(level string) (*Zap, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Zap{log: log}, nil
}

// Sync flushes buffered entries; call before exit.
func (z *Zap) Sync() error {
	return z.log.Sync()
}

func (z *Zap) DebugObj(msg, event string, fields map[string]any) {
	z.log.Debug(msg, toZapFields(event, fields)...)
}

func (z *Zap) InfoObj(msg, event string, fields map[string]any) {
	z.log.Info(msg, toZapFields(event, fields)...)
}

func (z *Zap) WarnObj(msg, event string, fields map[string]any) {
	z.log.Warn(msg, toZapFields(event, fields)...)
}

func (z *Zap) ErrorObj(msg, event string, fields map[string]any) {
	z.log.Error(msg, toZapFields(event, fields)...)
}

func toZapFields(event string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, zap.String("event", event))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// NopLogger discards everything. Useful as a constructor fallback and in
// tests.
type NopLogger struct{}

func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
