package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// ProbePaths are served by the health router with the reduced middleware
// stack.
var ProbePaths = []string{"/health", "/ready", "/whoami", "/metrics", "/api/lead/ping"}

func (h *LeadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/lead", h.Submit)
	router.GET("/api/lead", h.MethodNotAllowed)
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/whoami", h.Whoami)
	router.GET("/api/lead/ping", h.Ping)
	if h.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", h.metrics)
	}
}

func (h *PageHandler) RegisterRoutes(router *httprouter.Router) {
	for route, file := range pageRoutes {
		router.GET(route, h.page(file))
	}
	router.NotFound = http.HandlerFunc(h.Asset)
}
