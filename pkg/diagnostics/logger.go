// Package diagnostics collects the compile-time error kind taxonomy
// for the CLI and REPL (runtime error kinds are defined in pkg/vm), and
// wires the structured logger shared by the compiler and VM.
package diagnostics

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the zap logger the CLI hands to the quad generator
// and VM: a console encoder with colored levels and RFC3339
// timestamps, writing to stderr so it never interleaves with a
// program's own print output on stdout. verbose selects Debug level
// (one entry per executed quad); otherwise only phase-level Info
// entries are emitted.
func NewLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		&zapcore.BufferedWriteSyncer{WS: os.Stderr, FlushInterval: time.Second},
		level,
	))
}

// NewNopLogger returns a no-op logger, the default a fresh compiler or
// VM uses when no *zap.Logger is supplied.
func NewNopLogger() *zap.Logger { return zap.NewNop() }
