package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService services.BalanceSvcFacade
}

func registerBalanceRoutes(rg *gin.RouterGroup, bs services.BalanceSvcFacade) {
	h := &balanceHandler{balanceService: bs}
	rg.POST("/balances", h.createOpeningBalance)
}

// createOpeningBalance godoc
// @Summary Record an opening balance
// @Description Brings a balance into a reporting year. The balance date must precede the year.
// @Tags balances
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   balance body dto.CreateBalanceRequest true "Opening balance"
// @Success 201 {object} domain.Balance
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Invalid balance date"
// @Security BearerAuth
// @Router /entities/{entity_id}/balances [post]
func (h *balanceHandler) createOpeningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.CreateOpeningBalance(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create opening balance")
		return
	}

	logger.Info("Opening balance created", slog.String("balance_id", balance.BalanceID), slog.Int("year", balance.Year))
	c.JSON(http.StatusCreated, balance)
}
