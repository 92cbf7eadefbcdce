package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type assignmentHandler struct {
	assignmentService services.AssignmentSvcFacade
}

// registerAssignmentRoutes registers settlement routes under an entity group.
func registerAssignmentRoutes(rg *gin.RouterGroup, as services.AssignmentSvcFacade) {
	h := &assignmentHandler{assignmentService: as}

	rg.POST("/transactions/:transaction_id/assign", h.bulkAssign)
	rg.POST("/assignments", h.createAssignment)
	rg.DELETE("/assignments/:assignment_id", h.deleteAssignment)
}

// bulkAssign godoc
// @Summary Settle outstanding items with a transaction
// @Description Clears the oldest outstanding clearables on the transaction's account until its balance is used up.
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Assignable transaction ID"
// @Param   options body dto.BulkAssignRequest false "Settlement options"
// @Success 200 {array} dto.AssignmentResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id}/assign [post]
func (h *assignmentHandler) bulkAssign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkAssignRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")

	assignments, err := h.assignmentService.BulkAssign(c.Request.Context(), lctx, transactionID, req.ForexAccountID)
	if err != nil {
		respondError(c, err, "Failed to assign transaction")
		return
	}

	logger.Info("Bulk assignment completed", slog.String("transaction_id", transactionID), slog.Int("assignments", len(assignments)))
	c.JSON(http.StatusOK, dto.ToListAssignmentResponse(assignments))
}

// createAssignment godoc
// @Summary Assign part of a transaction to a clearable
// @Tags assignments
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   assignment body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction or clearable not found"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	a, err := h.assignmentService.Assign(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create assignment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(a))
}

// deleteAssignment godoc
// @Summary Reverse an assignment
// @Tags assignments
// @Param   entity_id path string true "Entity ID"
// @Param   assignment_id path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/assignments/{assignment_id} [delete]
func (h *assignmentHandler) deleteAssignment(c *gin.Context) {
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), lctx, c.Param("assignment_id")); err != nil {
		respondError(c, err, "Failed to delete assignment")
		return
	}
	c.Status(http.StatusNoContent)
}
