package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/brickyard-commerce/brickyard/internal/market"
	"github.com/brickyard-commerce/brickyard/internal/shared"
)

// MarketAnalyzer provides the market-analysis endpoint's backing service.
type MarketAnalyzer interface {
	Analyze(ctx context.Context, productID int64) (market.Analysis, error)
}

// Handler exposes the pricing engine over JSON endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	analyzer MarketAnalyzer
	validate *validator.Validate
}

// NewHandler constructs handler.
func NewHandler(logger *slog.Logger, service *Service, analyzer MarketAnalyzer) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		analyzer: analyzer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// MountRoutes registers routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/pricing/calculate", h.Calculate)
	r.Post("/quotations/generate", h.GenerateQuotation)
	r.Get("/pricing/market-analysis/{productID}", h.MarketAnalysis)
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "product_id and quantity are required")
		return
	}

	breakdown, err := h.service.CalculateProductPricing(r.Context(), *req.ProductID, Context{
		Quantity:      *req.Quantity,
		Location:      req.Location,
		Urgency:       req.Urgency,
		UserType:      req.UserType,
		PaymentMethod: req.PaymentMethod,
		DeliveryDate:  req.DeliveryDate,
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			shared.RespondMessage(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("calculate pricing failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, "failed to calculate pricing: "+err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, breakdown)
}

func (h *Handler) GenerateQuotation(w http.ResponseWriter, r *http.Request) {
	var req QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "items must be a non-empty array")
		return
	}

	items := make([]ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ItemRequest{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			Specifications: item.Specifications,
			Company:        item.Company,
			Brand:          item.Brand,
		})
	}

	quotation, err := h.service.GenerateQuotation(r.Context(), items, Context{
		Location: req.Location,
		Urgency:  req.Urgency,
		UserType: req.UserType,
	})
	if err != nil {
		h.logger.Error("generate quotation failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, "failed to generate quotation: "+err.Error())
		return
	}
	quotation.CustomerName = req.CustomerName
	quotation.CustomerEmail = req.CustomerEmail
	quotation.DeliveryAddress = req.DeliveryAddress

	shared.RespondJSON(w, http.StatusOK, quotation)
}

func (h *Handler) MarketAnalysis(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		shared.RespondMessage(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), productID)
	if err != nil {
		h.logger.Error("market analysis failed", slog.Any("error", err))
		shared.RespondMessage(w, http.StatusInternalServerError, "failed to fetch market analysis: "+err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, analysis)
}
