package authhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"leavedesk/internal/auth"
	"leavedesk/internal/domain/employee"
	"leavedesk/internal/platform/config"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Store
	Cfg       config.Config
}

func NewHandler(employees *employee.Store, cfg config.Config) *Handler {
	return &Handler{Employees: employees, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string             `json:"token"`
	User  *employee.Employee `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password required", reqID)
		return
	}

	id, hash, err := h.Employees.PasswordHashByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}
	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}

	emp, err := h.Employees.ByID(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Cfg.JWTSecret, auth.Claims{
		UserID:   emp.ID,
		Section:  emp.Section,
		IsAdmin:  emp.IsAdmin,
		IsMaster: emp.IsMaster,
	}, h.Cfg.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	api.Success(w, loginResponse{Token: token, User: emp}, reqID)
}
