package accounting

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance is debits minus credits over the entries posted to account.
// Superseded entries are ignored.
func Balance(entries []domain.LedgerEntry, accountID string) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.PostAccount != accountID || e.SupersededAt != nil {
			continue
		}
		sum = sum.Add(e.SignedAmount())
	}
	return sum
}

// Contribution restricts Balance to the entries of one transaction.
func Contribution(entries []domain.LedgerEntry, accountID, transactionID string) decimal.Decimal {
	own := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.TransactionID == transactionID {
			own = append(own, e)
		}
	}
	return Balance(own, accountID)
}

// OpeningBalance sums opening balance records in reporting currency.
// Each record is converted by its own exchange rate; debits add, credits subtract.
func OpeningBalance(records []domain.Balance) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		rate := r.ExchangeRate
		if rate.IsZero() {
			rate = decimal.NewFromInt(1)
		}
		amount := r.Amount.Div(rate)
		if r.BalanceType == domain.Credit {
			sum = sum.Sub(amount)
		} else {
			sum = sum.Add(amount)
		}
	}
	return RoundAmount(sum)
}

// EndOfDay returns the last representable instant of date's day in UTC.
func EndOfDay(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999000, time.UTC)
}

// StartOfDay truncates date to midnight UTC.
func StartOfDay(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// AccountStatement is the computed balance picture of an account at a date.
// It is returned alongside, never written onto, the account read from storage.
type AccountStatement struct {
	AccountID   string          `json:"accountID"`
	Year        int             `json:"year"`
	PeriodStart time.Time       `json:"periodStart"`
	EndDate     time.Time       `json:"endDate"`
	Opening     decimal.Decimal `json:"opening"`
	Movement    decimal.Decimal `json:"movement"`
	Closing     decimal.Decimal `json:"closing"`
}

// NewAccountStatement composes closing = opening + movement.
func NewAccountStatement(accountID string, year int, periodStart, endDate time.Time, opening, movement decimal.Decimal) AccountStatement {
	return AccountStatement{
		AccountID:   accountID,
		Year:        year,
		PeriodStart: periodStart,
		EndDate:     endDate,
		Opening:     opening,
		Movement:    movement,
		Closing:     opening.Add(movement),
	}
}
