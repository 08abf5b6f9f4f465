package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
)

// Handler wires HTTP endpoints for user administration.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAdmin)
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{ownerKey}", h.get)
		r.Put("/{ownerKey}/role", h.setRole)
	})
}

// me returns (and on first sight provisions) the caller's own record.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	user, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		h.logger.Error("resolve user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []User{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "ownerKey"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	OwnerKey string `json:"ownerKey" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
		return
	}
	user, err := h.service.Create(r.Context(), req.OwnerKey, req.Email, req.Role)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

type setRoleRequest struct {
	Role Role `json:"role" validate:"required"`
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
		return
	}
	user, err := h.service.SetRole(r.Context(), chi.URLParam(r, "ownerKey"), req.Role)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
