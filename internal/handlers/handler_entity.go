package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type entityHandler struct {
	entityService services.EntitySvcFacade
}

func newEntityHandler(es services.EntitySvcFacade) *entityHandler {
	return &entityHandler{entityService: es}
}

// registerEntityRoutes registers entity and reporting period routes.
func registerEntityRoutes(rg *gin.RouterGroup, es services.EntitySvcFacade) {
	h := newEntityHandler(es)

	rg.POST("/entities", h.createEntity)
	entity := rg.Group("/entities/:entity_id")
	{
		entity.GET("", h.getEntity)
		entity.GET("/periods/:year", h.getReportingPeriod)
		entity.POST("/periods/:year/close", h.closePeriod)
	}
}

// createEntity godoc
// @Summary Create a reporting entity
// @Description Creates an entity that owns its own ledger and hash chain.
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Security BearerAuth
// @Router /entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entity, err := h.entityService.CreateEntity(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create entity")
		return
	}

	logger.Info("Entity created", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// getEntity godoc
// @Summary Get an entity
// @Tags entities
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entity_id} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	entity, err := h.entityService.GetEntity(c.Request.Context(), c.Param("entity_id"))
	if err != nil {
		respondError(c, err, "Failed to get entity")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// getReportingPeriod godoc
// @Summary Get a reporting period
// @Description Returns the period's status. Years with no record are OPEN.
// @Tags entities
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   year path int true "Reporting year"
// @Success 200 {object} dto.ReportingPeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/{year} [get]
func (h *entityHandler) getReportingPeriod(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "Invalid year", err)
		return
	}
	period, err := h.entityService.GetReportingPeriod(c.Request.Context(), c.Param("entity_id"), year)
	if err != nil {
		respondError(c, err, "Failed to get reporting period")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportingPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a reporting period
// @Description Forbids further postings dated inside the period.
// @Tags entities
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   year path int true "Reporting year"
// @Success 200 {object} dto.ReportingPeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/{year}/close [post]
func (h *entityHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "Invalid year", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	period, err := h.entityService.ClosePeriod(c.Request.Context(), lctx, year)
	if err != nil {
		respondError(c, err, "Failed to close reporting period")
		return
	}

	logger.Info("Reporting period closed", slog.String("entity_id", lctx.EntityID), slog.Int("year", year))
	c.JSON(http.StatusOK, dto.ToReportingPeriodResponse(period))
}
