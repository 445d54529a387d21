package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/ecowallet-client/internal/config"
)

// redactedKeys are attribute keys whose values never reach the log output.
var redactedKeys = map[string]bool{
	"token":         true,
	"auth_token":    true,
	"authToken":     true,
	"authorization": true,
	"password":      true,
	"secret":        true,
}

// NewLogger creates a *slog.Logger writing to os.Stderr and sets it as the
// default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output. Format "text" produces
// human-readable output with source info. Level is one of: debug, info, warn,
// error (case-insensitive); defaults to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := NewLoggerTo(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewLoggerTo creates a logger writing to w without touching the default.
// Credential-bearing attributes are replaced with "[redacted]".
func NewLoggerTo(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text") && parseLevel(cfg.Level) == slog.LevelDebug,
		ReplaceAttr: redact,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("app", "ecowallet-client")
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[a.Key] && a.Value.String() != "" {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
