package employeehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"leavedesk/internal/domain/employee"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/me", h.handleMe)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Patch("/{employeeID}", h.handleUpdate)
	})
	r.Get("/sections/{section}/boss", h.handleSectionBoss)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	emp, err := h.Store.ByID(r.Context(), identity.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !identity.IsAdmin && !identity.IsMaster {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", reqID)
		return
	}

	emp, err := h.Store.ByID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !identity.IsMaster {
		api.Fail(w, http.StatusForbidden, "forbidden", "master role required", reqID)
		return
	}

	var payload employee.NewEmployee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" || payload.Section == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username, email, password and section required", reqID)
		return
	}

	id, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		if errors.Is(err, employee.ErrDuplicateUser) {
			api.Fail(w, http.StatusConflict, "duplicate_user", "username or email already in use", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !identity.IsAdmin && !identity.IsMaster {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", reqID)
		return
	}

	var payload employee.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	err := h.Store.UpdateProfile(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		switch {
		case errors.Is(err, employee.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		case errors.Is(err, employee.ErrNoFields):
			api.Fail(w, http.StatusBadRequest, "no_fields", "no updatable fields in payload", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update employee", reqID)
		}
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, reqID)
}

func (h *Handler) handleSectionBoss(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	boss, err := h.Store.BossBySection(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no admin for section", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load section admin", reqID)
		return
	}
	api.Success(w, boss, reqID)
}
