package logger

import (
	"os"
	"tradediary/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 全局logger，在main中通过InitLogger初始化
var l *zap.Logger

var sugar *zap.SugaredLogger

// InitLogger 根据配置初始化zap日志，支持文件滚动和控制台双输出
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if cfg.FileName != "" {
		// 文件输出使用lumberjack做日志滚动
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	l = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		Named(appName)
	sugar = l.Sugar()
}

func ensure() {
	if l == nil {
		// 未初始化时退回开发配置，避免空指针
		l, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
		sugar = l.Sugar()
	}
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { ensure(); l.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { ensure(); l.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { ensure(); l.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { ensure(); l.Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) { ensure(); l.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { ensure(); sugar.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { ensure(); sugar.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { ensure(); sugar.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { ensure(); sugar.Errorf(format, args...) }

func Fatalf(format string, args ...interface{}) { ensure(); sugar.Fatalf(format, args...) }

// Sync 刷新缓冲的日志，进程退出前调用
func Sync() {
	if l != nil {
		_ = l.Sync()
	}
}
