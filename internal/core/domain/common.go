package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// LedgerContext is passed explicitly into every posting, settlement and balance call.
// Nothing in the engine reads the current entity or user from ambient state.
type LedgerContext struct {
	EntityID string
	UserID   string
}

// NewLedgerContext builds a LedgerContext.
func NewLedgerContext(entityID, userID string) LedgerContext {
	return LedgerContext{EntityID: entityID, UserID: userID}
}
