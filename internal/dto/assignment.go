package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest matches part of an assignable transaction's balance to a clearable.
type CreateAssignmentRequest struct {
	TransactionID  string             `json:"transactionID" binding:"required"`
	ClearedType    domain.ClearedKind `json:"clearedType" binding:"required,oneof=TRANSACTION BALANCE"`
	ClearedID      string             `json:"clearedID" binding:"required"`
	Amount         decimal.Decimal    `json:"amount"`
	ForexAccountID *string            `json:"forexAccountID"`
}

// BulkAssignRequest controls a FIFO settlement run.
type BulkAssignRequest struct {
	ForexAccountID *string `json:"forexAccountID"`
}

// AssignmentResponse defines the data returned for an assignment.
type AssignmentResponse struct {
	AssignmentID   string             `json:"assignmentID"`
	TransactionID  string             `json:"transactionID"`
	ClearedType    domain.ClearedKind `json:"clearedType"`
	ClearedID      string             `json:"clearedID"`
	Amount         decimal.Decimal    `json:"amount"`
	ForexAccountID *string            `json:"forexAccountID,omitempty"`
	AssignmentDate time.Time          `json:"assignmentDate"`
}

// ToAssignmentResponse converts a domain.Assignment to its DTO
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:   a.AssignmentID,
		TransactionID:  a.TransactionID,
		ClearedType:    a.Cleared.Kind,
		ClearedID:      a.Cleared.ID,
		Amount:         a.Amount,
		ForexAccountID: a.ForexAccountID,
		AssignmentDate: a.AssignmentDate,
	}
}

// ToListAssignmentResponse converts assignments to DTOs
func ToListAssignmentResponse(assignments []domain.Assignment) []AssignmentResponse {
	res := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		res[i] = ToAssignmentResponse(&assignments[i])
	}
	return res
}
