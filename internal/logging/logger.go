package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Options selects the level and sink for a logger.
type Options struct {
	Level  string
	Output io.Writer
	JSON   bool
}

// New returns a logger writing to stderr at the given level.
func New(level string) (logr.Logger, error) {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions builds a zap-backed logr.Logger. Levels are debug, info,
// warn and error; debug also switches to the development encoder unless JSON
// output was requested.
func NewWithOptions(o Options) (logr.Logger, error) {
	lower := strings.ToLower(strings.TrimSpace(o.Level))
	opts := crzap.Options{}
	var zapLevel zapcore.Level
	switch lower {
	case "debug":
		opts.Development = !o.JSON
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return logr.Logger{}, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", o.Level)
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)
	opts.Level = &atomic
	if o.Output != nil {
		opts.DestWriter = o.Output
	}
	if o.JSON {
		opts.Encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return crzap.New(crzap.UseFlagOptions(&opts)).WithName("tripgrid"), nil
}

// IntoContext stores logger on ctx for subcommands.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger stored on ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	logger, err := logr.FromContext(ctx)
	if err != nil {
		return logr.Discard()
	}
	return logger
}
