package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the package-level logger. It is usable before Init so library
// packages and tests never hit a nil logger.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the logger for the running process. JSON output so log
// aggregators can index fields without parsing. LOG_LEVEL=debug enables
// debug logging.
func Init() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}

	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
