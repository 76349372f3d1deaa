// Package logging sets up the process-wide logger: zap writing to a
// rolling file so long-running servers don't fill the disk.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// L is the shared SugaredLogger. It starts as a no-op so library code and
// tests can log before Init wires the real sink.
var L = zap.NewNop().Sugar()

// Init wires the logger to filePath with rotation: 10 MB files, 3 backups,
// 7 days retention.
func Init(filePath string) {
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), zapcore.InfoLevel)
	L = zap.New(core, zap.AddCaller()).Sugar()
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
