package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService services.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ls services.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ls}
	rg.GET("/ledger/verify", h.verifyChain)
}

// verifyChain godoc
// @Summary Verify the entity's ledger hash chain
// @Description Recomputes every entry hash. A broken chain is reported in the body with status 200.
// @Tags ledger
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Success 200 {object} domain.ChainVerification
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/ledger/verify [get]
func (h *ledgerHandler) verifyChain(c *gin.Context) {
	result, err := h.ledgerService.VerifyChain(c.Request.Context(), c.Param("entity_id"))
	if err != nil {
		respondError(c, err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, result)
}
