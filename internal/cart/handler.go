package cart

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
	"github.com/hfchoice/storefront/internal/users"
)

// CleanupEnqueuer schedules a stale-cart sweep on the background worker.
type CleanupEnqueuer interface {
	EnqueueCartCleanup(ctx context.Context, days int) error
}

// Handler wires HTTP endpoints for the caller's own cart.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     users.Middleware
	cleanup   CleanupEnqueuer
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard users.Middleware, cleanup CleanupEnqueuer) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		cleanup:   cleanup,
		validator: validator.New(),
	}
}

// MountRoutes registers cart routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Post("/", h.add)
	r.Put("/", h.updateQuantity)
	r.Delete("/", h.remove)
	r.With(h.guard.RequireAdmin).Post("/cleanup", h.enqueueCleanup)
}

func ownerFrom(r *http.Request) (string, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	return id.OwnerKey, ok
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	if r.URL.Query().Get("summary") == "true" {
		h.summary(w, r)
		return
	}
	lines, err := h.service.ListItems(r.Context(), owner)
	if err != nil {
		h.logger.Error("list cart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lines)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	summary, err := h.service.Summarize(r.Context(), owner)
	if err != nil {
		h.logger.Error("summarize cart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

type addRequest struct {
	ItemID   int64 `json:"itemId" validate:"required"`
	Quantity *int  `json:"quantity"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	var req addRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", "item id is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	line, err := h.service.AddItem(r.Context(), owner, req.ItemID, quantity)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message":  "item added to cart",
		"cartItem": line,
	})
}

type updateRequest struct {
	CartItemID int64 `json:"cartItemId" validate:"required"`
	Quantity   int   `json:"quantity"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", "cart item id is required")
		return
	}
	line, err := h.service.UpdateQuantity(r.Context(), owner, req.CartItemID, req.Quantity)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message":  "cart item updated",
		"cartItem": line,
	})
}

type removeRequest struct {
	CartItemID int64  `json:"cartItemId"`
	Action     string `json:"action"`
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFrom(r)
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	var req removeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if req.Action == "clear" {
		if err := h.service.Clear(r.Context(), owner); err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
		return
	}
	if req.CartItemID == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", "cart item id or clear action is required")
		return
	}
	if err := h.service.RemoveItem(r.Context(), owner, req.CartItemID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "item removed from cart"})
}

func (h *Handler) enqueueCleanup(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = 30
	}
	if h.cleanup == nil {
		httpx.RespondError(w, shared.ErrDependencyFailure)
		return
	}
	if err := h.cleanup.EnqueueCartCleanup(r.Context(), days); err != nil {
		h.logger.Error("enqueue cart cleanup", slog.Any("error", err))
		httpx.RespondError(w, shared.ErrDependencyFailure)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{
		"message": "cleanup scheduled",
		"days":    days,
	})
}
