package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"leavedesk/internal/domain/reports"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/section/{section}", h.handleSectionUsage)
		r.Get("/section/{section}/pdf", h.handleSectionUsagePDF)
	})
}

func (h *Handler) sectionAllowed(r *http.Request, section string) (string, bool) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return reqID, false
	}
	if identity.IsMaster {
		return reqID, true
	}
	return reqID, identity.IsAdmin && identity.Section == section
}

func (h *Handler) handleSectionUsage(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	reqID, allowed := h.sectionAllowed(r, section)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "section admin role required", reqID)
		return
	}

	usage, err := h.Service.SectionUsage(r.Context(), section)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", reqID)
		return
	}
	api.Success(w, usage, reqID)
}

func (h *Handler) handleSectionUsagePDF(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	reqID, allowed := h.sectionAllowed(r, section)
	if !allowed {
		api.Fail(w, http.StatusForbidden, "forbidden", "section admin role required", reqID)
		return
	}

	data, err := h.Service.SectionUsagePDF(r.Context(), section)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-report-`+section+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
