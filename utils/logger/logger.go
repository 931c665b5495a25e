package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/octabyte/skillswap-client/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string
	Env         string
	ServiceName string
	// Console switches the encoder to a human readable format (CLI use).
	Console bool
	// OutputPaths defaults to stderr so CLI output on stdout stays clean.
	OutputPaths []string
}

func Init(cfg *Config) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := "json"
	if cfg.Console {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(getLogLevelFromString(cfg.Level)),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths: []string{
			"stderr",
		},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	logger = logger.WithOptions(zap.AddCallerSkip(1))

	zap.ReplaceGlobals(zap.Must(logger, err))
}

// Component returns the global logger scoped to a named component.
func Component(name string) *zap.Logger {
	return zap.L().Named(name)
}

// Token is a zap field carrying a masked credential.
func Token(key, token string) zap.Field {
	if token == "" {
		return zap.String(key, "")
	}
	return zap.String(key, utils.MaskToken(token))
}

func LogDebug(msg string, fields ...zap.Field) {
	zap.L().Debug(msg, fields...)
}

func LogDebugf(msg string, args ...interface{}) {
	if len(args) == 0 {
		zap.L().Debug(msg)
		return
	}
	zap.L().Debug(fmt.Sprintf(msg, args...))
}

func LogInfo(msg string, fields ...zap.Field) {
	zap.L().Info(msg, fields...)
}

func LogInfof(msg string, args ...interface{}) {
	if len(args) == 0 {
		zap.L().Info(msg)
		return
	}
	zap.L().Info(fmt.Sprintf(msg, args...))
}

func LogWarn(msg string, fields ...zap.Field) {
	zap.L().Warn(msg, fields...)
}

func LogWarnf(msg string, args ...interface{}) {
	if len(args) == 0 {
		zap.L().Warn(msg)
		return
	}
	zap.L().Warn(fmt.Sprintf(msg, args...))
}

func LogError(msg string, fields ...zap.Field) {
	zap.L().Error(msg, fields...)
}

func LogErrorf(msg string, args ...interface{}) {
	if len(args) == 0 {
		zap.L().Error(msg)
		return
	}
	zap.L().Error(fmt.Sprintf(msg, args...))
}

func LogFatal(msg string, fields ...zap.Field) {
	zap.L().Fatal(msg, fields...)
}

func getLogLevelFromString(level string) zapcore.Level {
	// Make level parsing case-insensitive and handle common variations
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug", "dbg":
		return zapcore.DebugLevel
	case "info", "information":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	case "panic":
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() {
	_ = zap.L().Sync()
}
