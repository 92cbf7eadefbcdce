package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	accountService services.AccountSvcFacade
	balanceService services.BalanceSvcFacade
	entityService  services.EntitySvcFacade
}

func newAccountHandler(as services.AccountSvcFacade, bs services.BalanceSvcFacade, es services.EntitySvcFacade) *accountHandler {
	return &accountHandler{accountService: as, balanceService: bs, entityService: es}
}

// registerAccountRoutes registers account, category and account balance routes under an entity group.
func registerAccountRoutes(rg *gin.RouterGroup, as services.AccountSvcFacade, bs services.BalanceSvcFacade, es services.EntitySvcFacade) {
	h := newAccountHandler(as, bs, es)

	rg.POST("/categories", h.createCategory)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PATCH("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deleteAccount)
		accounts.GET("/:account_id/balance", h.getBalance)
		accounts.GET("/:account_id/closing-balance", h.getClosingBalance)
		accounts.GET("/:account_id/opening-balance", h.getOpeningBalance)
		accounts.GET("/:account_id/entries", h.listEntries)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account. Its code is derived from the account type.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Ledger rule violated"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.Int("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), lctx, params)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), lctx, c.Param("account_id"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description The account type can only change while the account has no ledger entries.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account type is immutable"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), lctx, c.Param("account_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Soft deletes the account. Fails while its closing balance is non-zero.
// @Tags accounts
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account has hanging transactions"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")
	if err := h.accountService.DeleteAccount(c.Request.Context(), lctx, accountID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	logger.Info("Account deleted", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// createCategory godoc
// @Summary Create an account category
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Invalid category type"
// @Security BearerAuth
// @Router /entities/{entity_id}/categories [post]
func (h *accountHandler) createCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	category, err := h.accountService.CreateCategory(c.Request.Context(), lctx, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// getBalance godoc
// @Summary Get an account balance over a date range
// @Description Sums live ledger entries posted to the account between from and to, inclusive.
// @Tags balances
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	var params dto.BalanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")

	balance, err := h.balanceService.Balance(c.Request.Context(), lctx, accountID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	currency, ok := h.reportingCurrency(c, lctx.EntityID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:    accountID,
		CurrencyCode: currency,
		Balance:      balance,
		Display:      utils.DisplayAmount(balance, currency),
	})
}

// getClosingBalance godoc
// @Summary Get an account statement at a date
// @Description Opening balance of the reporting year plus the movement up to the date.
// @Tags balances
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Param   date query string false "Statement date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/closing-balance [get]
func (h *accountHandler) getClosingBalance(c *gin.Context) {
	var params dto.ClosingBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	endDate := time.Now().UTC()
	if params.Date != nil {
		endDate = *params.Date
	}
	stmt, err := h.balanceService.ClosingBalance(c.Request.Context(), lctx, c.Param("account_id"), endDate)
	if err != nil {
		respondError(c, err, "Failed to compute closing balance")
		return
	}
	currency, ok := h.reportingCurrency(c, lctx.EntityID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.StatementResponse{
		AccountID:    stmt.AccountID,
		CurrencyCode: currency,
		Year:         stmt.Year,
		PeriodStart:  stmt.PeriodStart,
		EndDate:      stmt.EndDate,
		Opening:      stmt.Opening,
		Movement:     stmt.Movement,
		Closing:      stmt.Closing,
		Display:      utils.DisplayAmount(stmt.Closing, currency),
	})
}

// getOpeningBalance godoc
// @Summary Get an account's opening balance for a reporting year
// @Tags balances
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Param   year query int true "Reporting year"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/opening-balance [get]
func (h *accountHandler) getOpeningBalance(c *gin.Context) {
	var params dto.OpeningBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}
	accountID := c.Param("account_id")

	opening, err := h.balanceService.OpeningBalance(c.Request.Context(), lctx, accountID, params.Year)
	if err != nil {
		respondError(c, err, "Failed to compute opening balance")
		return
	}
	currency, ok := h.reportingCurrency(c, lctx.EntityID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:    accountID,
		CurrencyCode: currency,
		Balance:      opening,
		Display:      utils.DisplayAmount(opening, currency),
	})
}

// listEntries godoc
// @Summary List ledger entries posted to an account
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags balances
// @Produce  json
// @Param   entity_id path string true "Entity ID"
// @Param   account_id path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 422 {object} map[string]string "Invalid continuation token"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/entries [get]
func (h *accountHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	lctx, ok := ledgerContext(c)
	if !ok {
		return
	}

	resp, err := h.balanceService.ListAccountEntries(c.Request.Context(), lctx, c.Param("account_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reportingCurrency looks up the currency balances are expressed in.
func (h *accountHandler) reportingCurrency(c *gin.Context, entityID string) (string, bool) {
	entity, err := h.entityService.GetEntity(c.Request.Context(), entityID)
	if err != nil {
		respondError(c, err, "Failed to load entity")
		return "", false
	}
	return entity.ReportingCurrency, true
}
