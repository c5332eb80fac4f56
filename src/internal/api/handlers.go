package api

import (
	"encoding/json"
	"net/http"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/config"
	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/service"
)

// Handler serves the status endpoints. It only reads shared state.
type Handler struct {
	cfg         *config.Config
	history     *service.RunHistory
	resourceURL string
}

// NewHandler creates a handler over the loaded configuration and the run history.
// resourceURL is the IP group URL shown by the config endpoint.
func NewHandler(cfg *config.Config, history *service.RunHistory, resourceURL string) *Handler {
	return &Handler{
		cfg:         cfg,
		history:     history,
		resourceURL: resourceURL,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// GetConfig returns the effective configuration.
// GET /api/v1/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, ConfigResponse{
		Config:      h.cfg.Redacted(),
		ConfigFile:  h.cfg.ConfigFilePath(),
		ResourceURL: h.resourceURL,
	})
}
