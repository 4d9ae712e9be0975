package pkglog

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogging installs the process-wide slog logger. Output is JSON so the
// entries can be shipped as-is; the level comes from LOG_LEVEL when set.
func InitLogging() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
