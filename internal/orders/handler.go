package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
	"github.com/hfchoice/storefront/internal/users"
)

// Handler wires HTTP endpoints for order listing and the status workflow.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	usersSvc *users.Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, usersSvc *users.Service) *Handler {
	return &Handler{logger: logger, service: service, usersSvc: usersSvc}
}

// MountRoutes registers order routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}/status", h.updateStatus)
}

// caller resolves the verified identity into a user record; role checks
// always run against the stored role, not anything the client sent.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return nil, false
	}
	user, err := h.usersSvc.Resolve(r.Context(), id)
	if err != nil {
		h.logger.Error("resolve caller", slog.Any("error", err))
		httpx.RespondError(w, err)
		return nil, false
	}
	return user, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	orders, err := h.service.List(r.Context(), caller.OwnerKey, caller.Role)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	order, err := h.service.Get(r.Context(), id, caller.OwnerKey, caller.Role)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	order, err := h.service.UpdateStatus(r.Context(), id, req.Status, caller.Role)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "order status updated",
		"order":   order,
	})
}
