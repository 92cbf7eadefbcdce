package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type exchangeRateHandler struct {
	exchangeRateService services.ExchangeRateSvcFacade
}

func newExchangeRateHandler(ers services.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes for exchange rates into the reporting currency.
func registerExchangeRateRoutes(rg *gin.RouterGroup, ers services.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(ers)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:currency", h.getExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Records the rate converting a currency into the entity's reporting currency over a validity window.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   exchangeRate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rate already exists"
// @Failure 422 {object} map[string]string "Invalid rate"
// @Security BearerAuth
// @Router /entities/{entity_id}/exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created", slog.String("currency", rate.CurrencyCode), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get the applicable exchange rate
// @Tags exchange-rates
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   currency path string true "ISO 4217 currency code"
// @Param   asOf query string false "Date the rate must apply on (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "No applicable rate"
// @Security BearerAuth
// @Router /entities/{entity_id}/exchange-rates/{currency} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	var q dto.ExchangeRateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if q.AsOf != nil {
		asOf = q.AsOf.UTC()
	}
	rate, err := h.exchangeRateService.GetApplicableRate(c.Request.Context(), lctx, strings.ToUpper(c.Param("currency")), asOf)
	if err != nil {
		respondError(c, err, "Failed to get exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
