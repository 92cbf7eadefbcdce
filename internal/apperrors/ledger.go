package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger error kinds. Each is matchable with errors.Is against a *LedgerError.
var (
	ErrNegativeAmount           = errors.New("negative amount")
	ErrInvalidCategoryType      = errors.New("invalid category type")
	ErrMissingAccountType       = errors.New("missing account type")
	ErrInvalidAccountType       = errors.New("invalid account type")
	ErrMissingVatAccount        = errors.New("missing vat account")
	ErrRedundantTransaction     = errors.New("redundant transaction")
	ErrInvalidBalanceDate       = errors.New("invalid balance date")
	ErrInvalidClearanceAccount  = errors.New("invalid clearance account")
	ErrInvalidClearanceCurrency = errors.New("invalid clearance currency")
	ErrInvalidClearanceEntry    = errors.New("invalid clearance entry")
	ErrSelfClearance            = errors.New("self clearance")
	ErrUnassignableTransaction  = errors.New("unassignable transaction")
	ErrUnclearableTransaction   = errors.New("unclearable transaction")
	ErrUnpostedAssignment       = errors.New("unposted assignment")
	ErrMissingForexAccount      = errors.New("missing forex account")
	ErrMixedAssignment          = errors.New("mixed assignment")
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrOverClearance            = errors.New("over clearance")

	ErrHangingTransactions   = errors.New("hanging transactions")
	ErrPostedTransaction     = errors.New("posted transaction")
	ErrClosedReportingPeriod = errors.New("closed reporting period")
	ErrImmutableAccountType  = errors.New("immutable account type")

	ErrChainBroken = errors.New("hash chain broken")
)

var kindClass = map[error]error{
	ErrNegativeAmount:           ErrValidation,
	ErrInvalidCategoryType:      ErrValidation,
	ErrMissingAccountType:       ErrValidation,
	ErrInvalidAccountType:       ErrValidation,
	ErrMissingVatAccount:        ErrValidation,
	ErrRedundantTransaction:     ErrValidation,
	ErrInvalidBalanceDate:       ErrValidation,
	ErrInvalidClearanceAccount:  ErrValidation,
	ErrInvalidClearanceCurrency: ErrValidation,
	ErrInvalidClearanceEntry:    ErrValidation,
	ErrSelfClearance:            ErrValidation,
	ErrUnassignableTransaction:  ErrValidation,
	ErrUnclearableTransaction:   ErrValidation,
	ErrUnpostedAssignment:       ErrValidation,
	ErrMissingForexAccount:      ErrValidation,
	ErrMixedAssignment:          ErrValidation,
	ErrInsufficientBalance:      ErrValidation,
	ErrOverClearance:            ErrValidation,
	ErrHangingTransactions:      ErrState,
	ErrPostedTransaction:        ErrState,
	ErrClosedReportingPeriod:    ErrState,
	ErrImmutableAccountType:     ErrState,
	ErrChainBroken:              ErrIntegrity,
}

// LedgerError is a business rule violation raised by the posting and settlement
// engine. It carries enough identifiers to render a precise message.
type LedgerError struct {
	Kind          error
	Detail        string
	TransactionID string
	ClearedID     string
	AccountID     string
	Amount        *decimal.Decimal
	Limit         *decimal.Decimal
}

// Class returns ErrValidation, ErrState or ErrIntegrity.
func (e *LedgerError) Class() error {
	if c, ok := kindClass[e.Kind]; ok {
		return c
	}
	return ErrValidation
}

func (e *LedgerError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	var ctx []string
	if e.TransactionID != "" {
		ctx = append(ctx, "transaction="+e.TransactionID)
	}
	if e.ClearedID != "" {
		ctx = append(ctx, "cleared="+e.ClearedID)
	}
	if e.AccountID != "" {
		ctx = append(ctx, "account="+e.AccountID)
	}
	if e.Amount != nil {
		ctx = append(ctx, "amount="+e.Amount.String())
	}
	if e.Limit != nil {
		ctx = append(ctx, "limit="+e.Limit.String())
	}
	if len(ctx) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(ctx, " "))
	}
	return b.String()
}

func (e *LedgerError) Unwrap() []error {
	return []error{e.Kind, e.Class()}
}

// LedgerErrorOption decorates a LedgerError with context.
type LedgerErrorOption func(*LedgerError)

// WithTransaction records the transaction involved.
func WithTransaction(id string) LedgerErrorOption {
	return func(e *LedgerError) { e.TransactionID = id }
}

// WithCleared records the cleared transaction or balance involved.
func WithCleared(id string) LedgerErrorOption {
	return func(e *LedgerError) { e.ClearedID = id }
}

// WithAccount records the account involved.
func WithAccount(id string) LedgerErrorOption {
	return func(e *LedgerError) { e.AccountID = id }
}

// WithAmounts records the attempted amount and the limit it exceeded.
func WithAmounts(amount, limit decimal.Decimal) LedgerErrorOption {
	return func(e *LedgerError) {
		e.Amount = &amount
		e.Limit = &limit
	}
}

// WithAmount records the attempted amount.
func WithAmount(amount decimal.Decimal) LedgerErrorOption {
	return func(e *LedgerError) { e.Amount = &amount }
}

// NewLedgerError builds a LedgerError of the given kind.
func NewLedgerError(kind error, detail string, opts ...LedgerErrorOption) *LedgerError {
	e := &LedgerError{Kind: kind, Detail: detail}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AsLedgerError extracts a *LedgerError from err.
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
