package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// AccountType is checked by the service so a missing type surfaces as MissingAccountType.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,currency"` // defaults to the reporting currency
	CategoryID   *string            `json:"categoryID"`
	Description  string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType"`
	CategoryID  *string             `json:"categoryID"`
	Description *string             `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	EntityID      string             `json:"entityID"`
	Code          int                `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	CategoryID    *string            `json:"categoryID,omitempty"`
	Description   string             `json:"description"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		EntityID:      acc.EntityID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		CategoryID:    acc.CategoryID,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// CreateCategoryRequest defines the data needed to create an account category.
type CreateCategoryRequest struct {
	Name         string             `json:"name" binding:"required"`
	CategoryType domain.AccountType `json:"categoryType" binding:"required"`
}

// BalanceQueryParams bounds a balance query. Both dates are inclusive.
type BalanceQueryParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}

// ClosingBalanceParams selects the date a closing balance is taken at.
type ClosingBalanceParams struct {
	Date *time.Time `form:"date" time_format:"2006-01-02" time_utc:"1"` // defaults to today
}

// OpeningBalanceParams selects the reporting year of an opening balance.
type OpeningBalanceParams struct {
	Year int `form:"year" binding:"required,min=1900,max=9999"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Display      string          `json:"display"` // rounded to the currency's minor unit
}
