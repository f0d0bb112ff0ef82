package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rakapradana/supplychain-opt/internal/forecast"
	"github.com/rakapradana/supplychain-opt/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetDailyDemand(c *gin.Context) {
	series, err := h.service.DailyDemand(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute daily demand", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *DashboardHandler) GetProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetForecast handles the per-product demand forecast. Thin history and
// failed fits are expected states for the UI, so both come back as 200
// payloads with a status the frontend renders as a warning banner.
func (h *DashboardHandler) GetForecast(c *gin.Context) {
	product := strings.TrimSpace(c.Query("product"))
	if product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product query parameter is required"})
		return
	}

	result, err := h.service.Forecast(c.Request.Context(), product)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "ok", "forecast": result})
	case errors.Is(err, service.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown product", "product": product})
	case errors.Is(err, forecast.ErrInsufficientData):
		c.JSON(http.StatusOK, gin.H{
			"status":  "insufficient_data",
			"warning": "Not enough data for forecasting this product.",
			"product": product,
		})
	case errors.Is(err, forecast.ErrUnavailable):
		c.JSON(http.StatusOK, gin.H{
			"status":  "unavailable",
			"warning": "Forecast unavailable for this product.",
			"product": product,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecast", "details": err.Error()})
	}
}

func (h *DashboardHandler) GetReorderDecisions(c *gin.Context) {
	table, err := h.service.Decisions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate reorder decisions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, table)
}
