package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
	"github.com/hfchoice/storefront/internal/users"
)

// Handler wires HTTP endpoints for the product catalog.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     users.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard users.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers catalog routes on the provided router. Reads are
// open to anonymous shoppers browsing the store; mutations require a
// verified admin, so the bearer middleware is applied only to that group.
func (h *Handler) MountRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/visible", h.listVisible)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(auth, h.guard.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Put("/{id}/visibility", h.toggleVisibility)
		r.Post("/{id}/image-key", h.mintImageKey)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filters := ListFilters{
		Search: r.URL.Query().Get("search"),
		Group:  r.URL.Query().Get("group"),
		Brand:  r.URL.Query().Get("brand"),
		Page:   page,
		Limit:  limit,
	}

	products, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	pagination := shared.NewPagination(filters.Page, filters.Limit, total)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"products":   products,
		"total":      total,
		"totalPages": pagination.TotalPages,
	})
}

func (h *Handler) listVisible(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListVisible(r.Context())
	if err != nil {
		h.logger.Error("list visible products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	product, err := h.service.Create(r.Context(), form)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	product, err := h.service.Update(r.Context(), id, form)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) toggleVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.ToggleVisibility(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) mintImageKey(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.MintImageKey(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (ProductForm, bool) {
	var form ProductForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, shared.ErrInvalidArgument)
		return form, false
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", err.Error())
		return form, false
	}
	return form, true
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, shared.ErrInvalidArgument
	}
	return id, nil
}
