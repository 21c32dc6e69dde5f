package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brickyard-commerce/brickyard/internal/shared"
)

// Handler exposes JSON CRUD endpoints for the product catalog.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	filters := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CategoryID = &id
		}
	}
	if v := r.URL.Query().Get("is_active"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}

	products, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	shared.RespondJSON(w, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": shared.NewPagination(page, limit, total),
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.RespondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("get product failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), productFromForm(form))
	if err != nil {
		h.logger.Error("create product failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, product)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, productFromForm(form)); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.RespondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("update product failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete product failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request) (ProductForm, bool) {
	var form ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return ProductForm{}, false
	}
	if err := h.validate.Struct(form); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, err.Error())
		return ProductForm{}, false
	}
	return form, true
}

func productFromForm(form ProductForm) Product {
	return Product{
		SKU:           form.SKU,
		Name:          form.Name,
		CategoryID:    form.CategoryID,
		Unit:          form.Unit,
		BasePrice:     form.BasePrice,
		QuantitySlabs: form.QuantitySlabs,
		Charges:       form.Charges,
		IsActive:      form.IsActive,
	}
}
