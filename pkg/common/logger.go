package common

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "eldercare-telemetry.log"

var (
	logger *zap.Logger
	once   sync.Once
	mu     sync.RWMutex
)

func current() *zap.Logger {
	once.Do(func() {
		built, err := buildLogger(logSettingsFromEnv())
		if err != nil {
			log.Fatalf("Error building logger: %v", err)
		}
		mu.Lock()
		if logger == nil {
			logger = built
		}
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLogger() *zap.Logger {
	return current().Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	return current().Named(name).With(fields...)
}

type logSettings struct {
	dir        string
	level      zapcore.Level
	production bool
}

// logSettingsFromEnv reads LOG_DIR (default ./logs), LOG_LEVEL (default debug
// on the console and info in the file) and GO_ENV.
func logSettingsFromEnv() logSettings {
	s := logSettings{dir: os.Getenv(EnvKeyLogDir), level: zap.DebugLevel, production: IsProduction()}
	if s.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Error getting current directory: %v", err)
		}
		s.dir = filepath.Join(wd, "logs")
	}
	if s.production {
		s.level = zap.InfoLevel
	}
	if raw := os.Getenv(EnvKeyLogLevel); raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			s.level = lvl
		} else {
			log.Printf("Ignoring %s=%q: %v", EnvKeyLogLevel, raw, err)
		}
	}
	return s
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// buildLogger writes JSON to a rotated file, and in development also to the
// console.
func buildLogger(s logSettings) (*zap.Logger, error) {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory %s: %w", s.dir, err)
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(s.dir, logFileName),
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		MaxAge:     14, // days
		Compress:   true,
	}
	core := zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotated), max(s.level, zap.InfoLevel))

	if !s.production {
		console := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stdout),
			s.level,
		)
		core = zapcore.NewTee(core, console)
	}
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func replaceLogger(l *zap.Logger) {
	current()
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetTestCaptureLogger routes every logger to buf as JSON at level and above.
func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	replaceLogger(zap.New(zapcore.NewCore(jsonEncoder(), zapcore.AddSync(buf), level)))
}

func SetTestLoggerNop() {
	replaceLogger(zap.NewNop())
}

// Sync flushes the file core, call before process exit.
func Sync() {
	_ = current().Sync()
}
