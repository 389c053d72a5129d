package windc

import "log/slog"

var logger = slog.Default()

// SetLogger redirects the library's structured logging. Passing nil
// restores the default logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}
