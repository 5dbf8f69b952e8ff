package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file written inside the log directory
const FileName = "debug.log"

var (
	// Logger is a no-op until Initialize is called. The TUI owns the terminal,
	// so logs only ever go to a file.
	Logger  = zap.NewNop().Sugar()
	base    *zap.Logger
	logFile *os.File
	mu      sync.Mutex
)

// ParseLevel converts a level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return lvl, nil
}

// Initialize points the logger at <logDir>/debug.log
func Initialize(logDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("error creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, FileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file at %s: %w", logPath, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), lvl)

	closeLocked()

	logFile = f
	base = zap.New(core, zap.AddCaller()).Named("kanbo")
	Logger = base.Sugar()

	Logger.Debugw("Logger initialized", "path", logPath, "level", lvl.String())
	return nil
}

// Close flushes and closes the log file and resets Logger to a no-op
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	return closeLocked()
}

func closeLocked() error {
	if base != nil {
		_ = base.Sync()
		base = nil
	}
	Logger = zap.NewNop().Sugar()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
