package util

import (
	"sync"
)

var (
	globalLogger *Logger
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. Calling it again replaces the
// previous logger and closes its outputs.
func InitLogger(logLevel, logFile string, console bool) error {
	logger, err := NewLogger(logLevel, logFile, console)
	if err != nil {
		return err
	}

	loggerMu.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// SetLogger installs an already-built logger, mainly for tests
func SetLogger(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	globalLogger = logger
}

// Log returns the global logger, or nil when none is installed
func Log() *Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

func LogInfo(msg string, fields ...Field) {
	if l := Log(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := Log(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if l := Log(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := Log(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if l := Log(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := Log(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := Log(); l != nil {
		l.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := Log(); l != nil {
		l.Errorf(format, args...)
	}
}
