// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger unless mode is "prod" or "production".
// level overrides the default level when it parses.
func New(mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if trimmed := strings.TrimSpace(level); trimmed != "" {
		parsed, err := zap.ParseAtomicLevel(trimmed)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Must mirrors New but falls back to a no-op logger on error.
func Must(mode, level string) *zap.Logger {
	logger, err := New(mode, level)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
