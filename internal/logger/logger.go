// Package logger provides the process-wide zap logger.
//
// Until Init is called every helper writes to a no-op logger, so packages
// and tests can log freely without setting anything up.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// helper reports the caller of the package-level Debug/Info/... functions
// rather than this file.
var helper = Log.WithOptions(zap.AddCallerSkip(1))

// Config selects the level and outputs.
type Config struct {
	Level   string // debug, info, warn or error
	Console bool
	File    FileConfig
}

// FileConfig controls the rotating log file. An empty Path disables it.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns rotation settings for path.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Init replaces the global logger.
func Init(cfg Config) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core
	if cfg.Console {
		cores = append(cores, consoleCore(os.Stdout, lvl))
	}
	if cfg.File.Path != "" {
		cores = append(cores, fileCore(rotatingWriter(cfg.File), lvl))
	}

	Set(zap.New(zapcore.NewTee(cores...), zap.AddCaller()))
	return nil
}

// Set installs l as the global logger. A nil l restores the no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
	Sugar = l.Sugar()
	helper = l.WithOptions(zap.AddCallerSkip(1))
}

// ParseLevel maps a config level name to a zap level.
// An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, err
	}
	return lvl, nil
}

func consoleCore(w io.Writer, lvl zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	return zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
}

func fileCore(w io.Writer, lvl zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	return zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
}

func rotatingWriter(cfg FileConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// Named returns a child of the global logger for one subsystem.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

func Debug(msg string, fields ...zap.Field) { helper.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { helper.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { helper.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { helper.Error(msg, fields...) }

// Fatal logs and exits with status 1.
func Fatal(msg string, fields ...zap.Field) { helper.Fatal(msg, fields...) }
