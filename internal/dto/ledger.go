package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// ListEntriesParams defines query parameters for paging ledger entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}
