// Package logging builds the zap loggers used across the admin client.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr so command output on stdout
// stays parseable. An empty level defaults to info. verbose switches
// to the human-readable development encoder.
func New(levelText string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if levelText != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(levelText)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelText, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
