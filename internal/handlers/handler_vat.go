package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type vatHandler struct {
	vatService services.VatSvcFacade
}

func registerVatRoutes(rg *gin.RouterGroup, vs services.VatSvcFacade) {
	h := &vatHandler{vatService: vs}

	rg.POST("/vats", h.createVat)
	rg.GET("/vats/:vat_id", h.getVat)
}

// createVat godoc
// @Summary Create a VAT rate
// @Description A non-zero rate must name a CONTROL account to post tax to.
// @Tags vats
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   vat body dto.CreateVatRequest true "VAT details"
// @Success 201 {object} domain.Vat
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Missing or invalid VAT account"
// @Security BearerAuth
// @Router /entities/{entity_id}/vats [post]
func (h *vatHandler) createVat(c *gin.Context) {
	var req dto.CreateVatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	vat, err := h.vatService.CreateVat(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create VAT")
		return
	}
	c.JSON(http.StatusCreated, vat)
}

// getVat godoc
// @Summary Get a VAT rate
// @Tags vats
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   vat_id path string true "VAT ID"
// @Success 200 {object} domain.Vat
// @Failure 404 {object} map[string]string "VAT not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/vats/{vat_id} [get]
func (h *vatHandler) getVat(c *gin.Context) {
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	vat, err := h.vatService.GetVat(c.Request.Context(), lctx, c.Param("vat_id"))
	if err != nil {
		respondError(c, err, "Failed to get VAT")
		return
	}
	c.JSON(http.StatusOK, vat)
}
