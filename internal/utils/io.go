package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning when the close fails. It is meant
// for deferred closes where the primary error of the surrounding function
// should not be overridden by a close failure.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
