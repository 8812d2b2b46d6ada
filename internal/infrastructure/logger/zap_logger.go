// Package logger builds the zap logger shared by the collector, analyzer,
// and dashboard binaries.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a production JSON logger at the given level. An
// unparseable level falls back to info rather than failing startup.
func NewLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	l, err := zapcore.ParseLevel(level)
	if err != nil {
		l = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(l)

	// ISO8601 timestamps under "timestamp", matching the rows the analysis
	// pipeline writes, so log lines and stored results line up when read
	// side by side.
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Per-timeframe failures are already isolated and reported; stacktraces
	// on every error just bloat the output.
	config.DisableStacktrace = true

	return config.Build()
}
