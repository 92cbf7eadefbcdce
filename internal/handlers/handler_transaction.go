package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService services.TransactionSvcFacade
	balanceService     services.BalanceSvcFacade
}

func newTransactionHandler(ts services.TransactionSvcFacade, bs services.BalanceSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts, balanceService: bs}
}

// registerTransactionRoutes registers transaction authoring and posting routes under an entity group.
func registerTransactionRoutes(rg *gin.RouterGroup, ts services.TransactionSvcFacade, bs services.BalanceSvcFacade) {
	h := newTransactionHandler(ts, bs)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/:transaction_id", h.getTransaction)
		txns.DELETE("/:transaction_id", h.deleteTransaction)
		txns.POST("/:transaction_id/line-items", h.addLineItem)
		txns.PUT("/:transaction_id/line-items/:line_item_id", h.updateLineItem)
		txns.POST("/:transaction_id/post", h.postTransaction)
		txns.GET("/:transaction_id/contribution", h.getContribution)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Creates an unposted transaction with its line items.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_type", string(txn.TransactionType)),
		slog.Int("line_items", len(txn.LineItems)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), lctx, c.Param("transaction_id"))
	if err != nil {
		respondError(c, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete an unposted transaction
// @Tags transactions
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), lctx, transactionID); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// addLineItem godoc
// @Summary Add a line item
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   lineItem body dto.LineItemRequest true "Line item"
// @Success 201 {object} dto.LineItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id}/line-items [post]
func (h *transactionHandler) addLineItem(c *gin.Context) {
	var req dto.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	li, err := h.transactionService.AddLineItem(c.Request.Context(), lctx, c.Param("transaction_id"), req)
	if err != nil {
		respondError(c, err, "Failed to add line item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLineItemResponse(li))
}

// updateLineItem godoc
// @Summary Replace a line item
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   line_item_id path string true "Line item ID"
// @Param   lineItem body dto.LineItemRequest true "Line item"
// @Success 200 {object} dto.LineItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Line item not found"
// @Failure 409 {object} map[string]string "Transaction already posted"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id}/line-items/{line_item_id} [put]
func (h *transactionHandler) updateLineItem(c *gin.Context) {
	var req dto.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	li, err := h.transactionService.UpdateLineItem(c.Request.Context(), lctx, c.Param("transaction_id"), c.Param("line_item_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(li))
}

// postTransaction godoc
// @Summary Post a transaction to the ledger
// @Description Writes mirrored, hash-chained ledger entries. Reposting supersedes the previous entries.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   options body dto.PostTransactionRequest false "Posting options"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Reporting period closed"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id}/post [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), lctx, c.Param("transaction_id"), req)
	if err != nil {
		respondError(c, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", txn.Amount.String()),
		slog.Bool("auto_assign", req.AutoAssign))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getContribution godoc
// @Summary Get a transaction's contribution to an account
// @Tags transactions
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   transaction_id path string true "Transaction ID"
// @Param   account_id query string true "Account ID"
// @Success 200 {object} dto.ContributionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/transactions/{transaction_id}/contribution [get]
func (h *transactionHandler) getContribution(c *gin.Context) {
	var params dto.ContributionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")

	amount, err := h.balanceService.Contribution(c.Request.Context(), lctx, params.AccountID, transactionID)
	if err != nil {
		respondError(c, err, "Failed to compute contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ContributionResponse{
		TransactionID: transactionID,
		AccountID:     params.AccountID,
		Contribution:  amount,
	})
}
