package domain

// AccountType classifies an account for reporting.
type AccountType string

const (
	NonCurrentAsset     AccountType = "NON_CURRENT_ASSET"
	ContraAsset         AccountType = "CONTRA_ASSET"
	Inventory           AccountType = "INVENTORY"
	Bank                AccountType = "BANK"
	CurrentAsset        AccountType = "CURRENT_ASSET"
	Receivable          AccountType = "RECEIVABLE"
	NonCurrentLiability AccountType = "NON_CURRENT_LIABILITY"
	Control             AccountType = "CONTROL"
	CurrentLiability    AccountType = "CURRENT_LIABILITY"
	Payable             AccountType = "PAYABLE"
	Equity              AccountType = "EQUITY"
	OperatingRevenue    AccountType = "OPERATING_REVENUE"
	OperatingExpense    AccountType = "OPERATING_EXPENSE"
	NonOperatingRevenue AccountType = "NON_OPERATING_REVENUE"
	DirectExpense       AccountType = "DIRECT_EXPENSE"
	OverheadExpense     AccountType = "OVERHEAD_EXPENSE"
	OtherExpense        AccountType = "OTHER_EXPENSE"
	Reconciliation      AccountType = "RECONCILIATION"
)

// accountCodeBase is the first code of each account type's code range.
var accountCodeBase = map[AccountType]int{
	NonCurrentAsset:     0,
	ContraAsset:         1000,
	Inventory:           2000,
	Bank:                3000,
	CurrentAsset:        4000,
	Receivable:          5000,
	NonCurrentLiability: 6000,
	Control:             7000,
	CurrentLiability:    8000,
	Payable:             9000,
	Equity:              10000,
	OperatingRevenue:    11000,
	OperatingExpense:    12000,
	NonOperatingRevenue: 13000,
	DirectExpense:       14000,
	OverheadExpense:     15000,
	OtherExpense:        16000,
	Reconciliation:      17000,
}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	_, ok := accountCodeBase[t]
	return ok
}

// NextAccountCode returns the code for a new account given how many accounts of
// the same type the entity already has.
func NextAccountCode(t AccountType, existing int) int {
	return accountCodeBase[t] + existing + 1
}

// Account is a ledger account within an entity.
type Account struct {
	AccountID    string      `json:"accountID"`
	EntityID     string      `json:"entityID"`
	Code         int         `json:"code"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	CategoryID   *string     `json:"categoryID,omitempty"`
	Description  string      `json:"description"`
	AuditFields
}

// Category groups accounts of a single type.
type Category struct {
	CategoryID   string      `json:"categoryID"`
	EntityID     string      `json:"entityID"`
	Name         string      `json:"name"`
	CategoryType AccountType `json:"categoryType"`
	AuditFields
}
