package logging

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp format of console log lines
const TimeLayout = "2006-01-02 15:04:05.000"

// New builds a console logger on stderr at level
func New(level zapcore.Level) *zap.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter builds a console logger writing to w
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = timeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Install replaces the global logger and returns a function restoring the
// previous one after flushing.
func Install(logger *zap.Logger) func() {
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(TimeLayout))
}
