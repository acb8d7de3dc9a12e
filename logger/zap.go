package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ReplaceZapGlobals installs a zap logger at level as zap.L(), used by the chain client for
// low-level transaction tracing. It returns the function that restores the previous logger.
func ReplaceZapGlobals(level string) (func(), error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zap.ReplaceGlobals(z), nil
}
