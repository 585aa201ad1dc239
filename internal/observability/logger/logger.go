package logger

import (
	"strings"

	"github.com/abdouni493/auto-rental-application/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process-wide zap logger. Production gets JSON output,
// everything else gets the development console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		zc := zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zc.Build()
	}
	zc := zap.NewDevelopmentConfig()
	return zc.Build()
}

// Named returns a child logger for a component, tolerating a nil root.
func Named(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return log
	}
	return log.Named(name)
}
