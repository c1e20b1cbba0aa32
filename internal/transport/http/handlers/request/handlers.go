package requesthandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"leavedesk/internal/domain/employee"
	"leavedesk/internal/domain/request"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
)

type Handler struct {
	Service   *request.Service
	Employees *employee.Store
}

func NewHandler(service *request.Service, employees *employee.Store) *Handler {
	return &Handler{Service: service, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/requests", func(r chi.Router) {
		r.Post("/", h.handleSubmit)
		r.Get("/mine", h.handleListMine)
		r.Get("/section/{section}", h.handleListSection)
		r.Get("/{requestID}", h.handleGet)
		r.Post("/{requestID}/cancel", h.handleCancel)
		r.Post("/{requestID}/decide", h.handleDecide)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload request.NewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	lr, err := h.Service.Submit(r.Context(), identity.UserID, payload)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrUnknownType),
			errors.Is(err, request.ErrInvalidPeriod),
			errors.Is(err, request.ErrInvalidHours):
			api.Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), reqID)
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "requesting employee not found", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit request", reqID)
		}
		return
	}
	api.Created(w, lr, reqID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	list, err := h.Service.Store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list requests", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleListSection(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	section := chi.URLParam(r, "section")
	if !identity.IsMaster && (!identity.IsAdmin || identity.Section != section) {
		api.Fail(w, http.StatusForbidden, "forbidden", "section admin role required", reqID)
		return
	}

	list, err := h.Service.Store.ListBySection(r.Context(), section)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list requests", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	lr, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"), identity.UserID, identity.IsAdmin || identity.IsMaster)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
		case errors.Is(err, request.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "forbidden", "not your request", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load request", reqID)
		}
		return
	}
	api.Success(w, lr, reqID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "requestID"), identity.UserID); err != nil {
		if errors.Is(err, request.ErrInvalidState) {
			api.Fail(w, http.StatusConflict, "not_cancellable", "only your own pending requests can be cancelled", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "cancel_failed", "failed to cancel request", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "cancelled"}, reqID)
}

type decidePayload struct {
	Approve bool `json:"approve"`
}

// handleDecide performs the administrative transition only. The balance
// consequence is applied by the reconciler reacting to the row update, never
// here.
func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !identity.IsAdmin && !identity.IsMaster {
		api.Fail(w, http.StatusForbidden, "forbidden", "section admin role required", reqID)
		return
	}

	var payload decidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	decider, err := h.Employees.ByID(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "decide_failed", "failed to load decider", reqID)
		return
	}

	lr, err := h.Service.Decide(r.Context(), chi.URLParam(r, "requestID"), payload.Approve, decider)
	if err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", reqID)
		case errors.Is(err, request.ErrForbidden):
			api.Fail(w, http.StatusForbidden, "forbidden", "request belongs to another section", reqID)
		case errors.Is(err, request.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "already_decided", "request is no longer pending", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "decide_failed", "failed to decide request", reqID)
		}
		return
	}
	api.Success(w, lr, reqID)
}
