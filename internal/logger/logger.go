// Package logger configures the process-wide structured logger.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the shared instance; packages call logger.Debug/Info/... directly.
var Logger = log.New(os.Stderr)

func init() {
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the log level by name; unknown names fall back to info.
func Configure(level string) {
	switch level {
	case "debug":
		Logger.SetLevel(log.DebugLevel)
	case "warn":
		Logger.SetLevel(log.WarnLevel)
	case "error":
		Logger.SetLevel(log.ErrorLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
}

// Debug logs at debug level with key/value pairs.
func Debug(msg string, kv ...any) { Logger.Debug(msg, kv...) }

// Info logs at info level with key/value pairs.
func Info(msg string, kv ...any) { Logger.Info(msg, kv...) }

// Warn logs at warn level with key/value pairs.
func Warn(msg string, kv ...any) { Logger.Warn(msg, kv...) }

// Error logs at error level with key/value pairs.
func Error(msg string, kv ...any) { Logger.Error(msg, kv...) }
