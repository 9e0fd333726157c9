package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide zap logger together with the level that gates
// it. Level changes made at runtime apply to every logger derived from it.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// New logs JSON to stderr when env is prod and colored console output
// otherwise. An unknown level name falls back to info.
func New(level, env string) *Logger {
	return newLogger(level, env, zapcore.Lock(os.Stderr))
}

func newLogger(level, env string, out zapcore.WriteSyncer) *Logger {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	atom := zap.NewAtomicLevelAt(lvl)

	var enc zapcore.Encoder
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if strings.EqualFold(env, "prod") {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "ts"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
		opts = append(opts, zap.Development())
	}

	return &Logger{
		Logger: zap.New(zapcore.NewCore(enc, out, atom), opts...),
		level:  atom,
	}
}

// Level is the live level switch behind the logger.
func (l *Logger) Level() zap.AtomicLevel {
	return l.level
}

// Close flushes buffered entries. Sync errors on a terminal are expected and
// dropped.
func (l *Logger) Close() {
	_ = l.Sync()
}
