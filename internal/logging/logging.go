package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Setup installs a JSON slog handler at the given level as the process
// default. Unknown levels fall back to info.
func Setup(level string) {
	logLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(handler))
}

// Fatalf logs at error level and exits. Bootstrap use only.
func Fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
