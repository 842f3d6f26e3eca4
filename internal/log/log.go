// Package log wraps a zap SugaredLogger behind a small leveled interface.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs key/value pairs at different levels.
type Logger interface {
	Info(keyvals ...interface{})
	Debug(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Debugw(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	Fatalw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
	Sync() error
}

type log struct {
	*zap.SugaredLogger
}

func (l *log) With(args ...interface{}) Logger {
	return &log{l.SugaredLogger.With(args...)}
}

func (l *log) Named(s string) Logger {
	return &log{l.SugaredLogger.Named(s)}
}

const (
	DebugLevel = int(zapcore.DebugLevel)
	InfoLevel  = int(zapcore.InfoLevel)
	WarnLevel  = int(zapcore.WarnLevel)
	ErrorLevel = int(zapcore.ErrorLevel)
)

// DefaultLevel is the level of DefaultLogger. TEXTSPLIT_LOG=DEBUG lowers it.
var DefaultLevel = InfoLevel

//nolint:gochecknoinits
func init() {
	if v, ok := os.LookupEnv("TEXTSPLIT_LOG"); ok && v == "DEBUG" {
		DefaultLevel = DebugLevel
	}
}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// DefaultLogger writes JSON to stderr at DefaultLevel.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Stderr, DefaultLevel, true)
	})
	return defaultLogger
}

// New returns a logger writing to output at the given level. A nil output
// means stderr.
func New(output zapcore.WriteSyncer, level int, isJSON bool) Logger {
	if output == nil {
		output = os.Stderr
	}
	encoder := consoleEncoder()
	if isJSON {
		encoder = jsonEncoder()
	}
	core := zapcore.NewCore(encoder, output, zapcore.Level(level))
	return &log{zap.New(core, zap.WithCaller(true)).Sugar()}
}

// Nop discards everything.
func Nop() Logger {
	return &log{zap.NewNop().Sugar()}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func jsonEncoder() zapcore.Encoder    { return zapcore.NewJSONEncoder(encoderConfig()) }
func consoleEncoder() zapcore.Encoder { return zapcore.NewConsoleEncoder(encoderConfig()) }

type ctxKey struct{}

// ToContext attaches l to ctx.
func ToContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContextOrDefault returns the logger stored by ToContext, or DefaultLogger.
func FromContextOrDefault(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return DefaultLogger()
}
