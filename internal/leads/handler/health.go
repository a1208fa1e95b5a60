package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	httputil "leadform/pkg/http"
	"leadform/pkg/logger"
)

const whoamiText = "Lead form server OK"

// Pinger is implemented by *client.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
}

type HealthHandler struct {
	deps    Pinger
	metrics http.Handler
	log     *logger.Logger
}

// NewHealthHandler builds the probe endpoints. metrics may be nil, in which
// case /metrics is not registered.
func NewHealthHandler(deps Pinger, metrics http.Handler, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		metrics: metrics,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.deps == nil {
		if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ready", Redis: "disabled"}); err != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.deps.Ping(ctx); err != nil {
		h.log.Error("Dependency health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Redis:  "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ready",
		Redis:  "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ping", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Whoami(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, whoamiText); err != nil {
		h.log.Error("failed to write response", "handler", "Whoami", "operation", "WriteText", "error", err)
	}
}
