package macperm

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tmc/macperm/internal/system"
)

var (
	libLoggerOnce sync.Once
	libLogger     *slog.Logger
)

// defaultLogger discards everything unless MACPERM_DEBUG is set, in which
// case debug output goes to stderr.
func defaultLogger() *slog.Logger {
	libLoggerOnce.Do(func() {
		if !system.IsDebugEnabled() {
			libLogger = slog.New(slog.DiscardHandler)
			return
		}
		libLogger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})).With("pkg", "macperm")
	})
	return libLogger
}

func debugLog(msg string, args ...any) {
	defaultLogger().Debug(msg, args...)
}
