package box

import "log/slog"

// logger is the package-level diagnostic logger. Warnings (dropped input
// keys, tilt auto-correction) go to Warn; outbound-point advisories from
// Check go to Debug. Tests or embedding applications may replace or mute
// it with SetLogger.
var logger = slog.Default()

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.Default()
		return
	}
	logger = l
}
