// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

package commons

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// TraceLevel sits below zap's DebugLevel and is used for the very chatty
// per-rule transcription logging.
const TraceLevel = zapcore.DebugLevel - 1

// Logger is the logging contract used throughout the library.
type Logger interface {
	Level() zapcore.Level

	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	DPanic(args ...interface{})
	DPanicf(template string, args ...interface{})
	Panic(args ...interface{})
	Panicf(template string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})

	// Benchmark records the duration of a named operation at debug level.
	Benchmark(functionName string, duration time.Duration)
	// Tracef logs below debug level; used in transcription rule dispatch.
	Tracef(ctx context.Context, format string, args ...interface{})

	Sync() error
}

type applicationLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

// LoggerOption configures the application logger.
type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level    zapcore.Level
	filename string
}

// WithLevel sets the minimum level of emitted log entries.
func WithLevel(level zapcore.Level) LoggerOption {
	return func(c *loggerConfig) { c.level = level }
}

// WithRotatingFile writes log output to a size-rotated file in addition
// to stderr.
func WithRotatingFile(filename string) LoggerOption {
	return func(c *loggerConfig) { c.filename = filename }
}

// NewApplicationLogger builds the standard zap-backed logger.
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	cfg := &loggerConfig{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(cfg)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	sink := zapcore.Lock(os.Stderr)
	core := zapcore.NewCore(encoder, sink, cfg.level)
	if cfg.filename != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.filename,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, rotated, cfg.level))
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{sugar: logger.Sugar(), level: cfg.level}, nil
}

func (l *applicationLogger) Level() zapcore.Level { return l.level }

func (l *applicationLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *applicationLogger) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}
func (l *applicationLogger) Info(args ...interface{}) { l.sugar.Info(args...) }
func (l *applicationLogger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}
func (l *applicationLogger) Warn(args ...interface{}) { l.sugar.Warn(args...) }
func (l *applicationLogger) Warnf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}
func (l *applicationLogger) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *applicationLogger) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}
func (l *applicationLogger) DPanic(args ...interface{}) { l.sugar.DPanic(args...) }
func (l *applicationLogger) DPanicf(template string, args ...interface{}) {
	l.sugar.DPanicf(template, args...)
}
func (l *applicationLogger) Panic(args ...interface{}) { l.sugar.Panic(args...) }
func (l *applicationLogger) Panicf(template string, args ...interface{}) {
	l.sugar.Panicf(template, args...)
}
func (l *applicationLogger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }
func (l *applicationLogger) Fatalf(template string, args ...interface{}) {
	l.sugar.Fatalf(template, args...)
}

func (l *applicationLogger) Benchmark(functionName string, duration time.Duration) {
	l.sugar.Debugf("%s took %s", functionName, duration)
}

func (l *applicationLogger) Tracef(_ context.Context, format string, args ...interface{}) {
	if l.level <= TraceLevel {
		l.sugar.Debugf(format, args...)
	}
}

func (l *applicationLogger) Sync() error { return l.sugar.Sync() }
