package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheikh-saqib/vending-machine/internal/config"
)

// New builds the process logger. Development and local environments get the
// human readable console encoder, everything else JSON.
func New(env string, cfg config.LoggerConfig) (*zap.Logger, error) {
	baseConfig := buildConfigByEnvironment(env)

	level, err := resolveLevel(env, cfg.Level)
	if err != nil {
		return nil, err
	}

	baseConfig.Level = level
	baseConfig.DisableStacktrace = true

	logger, err := baseConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.With(zap.String("service", "vending-machine")), nil
}

func resolveLevel(env, raw string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(raw) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(raw); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", raw, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}

	if isDevelopment(env) {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}

	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func buildConfigByEnvironment(env string) zap.Config {
	if isDevelopment(env) {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func isDevelopment(env string) bool {
	return env == "development" || env == "local"
}
