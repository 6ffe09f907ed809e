// Package logger builds the application's structured loggers.
// Everything that needs to log receives a *zap.Logger explicitly;
// there is no package-level logger state.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

// Available log formats.
const (
	// FormatConsole is human-readable output for terminals.
	FormatConsole Format = "console"

	// FormatJSON is machine-readable output for log collectors.
	FormatJSON Format = "json"
)

// Options configures logger construction.
type Options struct {
	// Level is the minimum level to emit: "debug", "info", "warn",
	// "error". Empty means "info".
	Level string

	// Format selects the encoder. Empty means console.
	Format Format

	// Output overrides the log destination. Nil means stderr.
	Output io.Writer
}

// New constructs a logger from options.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	switch opts.Format {
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	case FormatConsole, "":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core), nil
}

// Nop returns a logger that discards everything. Useful for tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
