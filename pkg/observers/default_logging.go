package observers

import "log/slog"

// NewDefaultLoggingObserver creates a logging observer on slog.Default at info level
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(slog.Default().With("component", "traffix"), slog.LevelInfo)
}
