package utils

import (
	"io"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/log"
)

// CloseOrWarn closes c and logs a warning on failure.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close: %v", err)
	}
}

// DrainAndClose discards the remainder of an HTTP body so the connection can be reused.
func DrainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	CloseOrWarn(body)
}
