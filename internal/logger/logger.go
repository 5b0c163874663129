// Package logger is a thin slog facade shared by every layer. Services log
// method entry/exit through it so a single request can be traced across the
// handler, service and repository boundaries without threading a logger value
// everywhere.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var root *slog.Logger

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Initialize builds the process-wide logger. format is "json" or "text";
// anything else falls back to text.
func Initialize(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	root = slog.New(h)
	slog.SetDefault(root)
}

// Get returns the process-wide logger, initializing it with defaults if a
// caller logs before main has run Initialize.
func Get() *slog.Logger {
	if root == nil {
		Initialize("info", "text")
	}
	return root
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// EnterMethod marks the start of a service operation.
func EnterMethod(method string, args ...any) {
	Get().Debug("method enter", append([]any{"method", method}, args...)...)
}

// ExitMethod marks the successful end of a service operation.
func ExitMethod(method string, args ...any) {
	Get().Debug("method exit", append([]any{"method", method}, args...)...)
}

// ExitMethodWithError marks a service operation that returned an error.
func ExitMethodWithError(method string, err error, args ...any) {
	Get().Error("method failed", append([]any{"method", method, "error", err}, args...)...)
}

// ExternalServiceCall records an outbound call to a third-party API.
func ExternalServiceCall(service, operation string, args ...any) {
	Get().Debug("external call", append([]any{"service", service, "operation", operation}, args...)...)
}

// ExternalServiceResult records the outcome of an outbound call.
func ExternalServiceResult(service, operation string, err error, args ...any) {
	kv := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		Get().Error("external call failed", append(kv, "error", err)...)
		return
	}
	Get().Debug("external call ok", kv...)
}
