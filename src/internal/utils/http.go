package utils

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// NewHTTPClient returns a pooled client that gives up after timeout.
// A zero timeout leaves requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}
