package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	leadserrors "leadform/internal/leads/errors"
	"leadform/internal/leads/service"
	httputil "leadform/pkg/http"
	"leadform/pkg/logger"
	"leadform/pkg/middleware"
	"leadform/pkg/model"
)

type LeadHandler struct {
	service         service.LeadService
	successRedirect string
	log             *logger.Logger
}

func NewLeadHandler(svc service.LeadService, successRedirect string, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		service:         svc,
		successRedirect: successRedirect,
		log:             log,
	}
}

type SubmitResponse struct {
	OK   bool        `json:"ok"`
	Lead *model.Lead `json:"lead"`
}

// Submit accepts a form post or a JSON body. Form posts are redirected to the
// success page, JSON callers get the stored lead back.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fields, err := httputil.ReadFields(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lead, err := h.service.Submit(r.Context(), model.RawLeadFromFields(fields))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !httputil.IsJSON(r) {
		http.Redirect(w, r, h.successRedirect, http.StatusSeeOther)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, SubmitResponse{OK: true, Lead: lead}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", err)
	}
}

// writeError relays a rejected create verbatim. Everything else goes through
// the AppError mapping.
func (h *LeadHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *leadserrors.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Op == leadserrors.OpCreate && upstreamErr.Responded() {
		if writeErr := httputil.WriteRaw(w, upstreamErr.Status, httputil.ContentTypeJSON, upstreamErr.Body); writeErr != nil {
			h.log.Error("failed to write upstream response", "handler", "Submit", "operation", "WriteRaw",
				"request_id", middleware.GetRequestID(r.Context()), "error", writeErr)
		}
		return
	}

	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError",
			"request_id", middleware.GetRequestID(r.Context()), "error", writeErr)
	}
}

func (h *LeadHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Allow", http.MethodPost)
	if err := httputil.WriteText(w, http.StatusMethodNotAllowed, "Use POST /api/lead"); err != nil {
		h.log.Error("failed to write response", "handler", "MethodNotAllowed", "operation", "WriteText", "error", err)
	}
}
