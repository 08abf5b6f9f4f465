package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hfchoice/storefront/internal/observability"
	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
)

// Handler wires the checkout endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   metrics,
		validator: validator.New(),
	}
}

// MountRoutes registers the checkout route on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.submit)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
		return
	}

	order, err := h.service.Submit(r.Context(), id.OwnerKey, req)
	if err != nil {
		if errors.Is(err, shared.ErrDependencyFailure) {
			// The order row exists at this point; only the mail failed.
			h.metrics.EmailFailed()
			h.logger.Error("checkout notification failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	h.metrics.OrderCreated()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "quote request submitted successfully",
		"orderId": order.ID,
		"order":   order,
	})
}
