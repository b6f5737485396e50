package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Init 根据 LOG_LEVEL 环境变量初始化全局 zap logger
func Init() {
	lvl := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := lvl.Set(strings.ToLower(strings.TrimSpace(raw))); err != nil {
			lvl = zapcore.InfoLevel
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l
}

// L 获取全局 logger
func L() *zap.Logger {
	return log
}

// S 获取全局 sugared logger
func S() *zap.SugaredLogger {
	return log.Sugar()
}
