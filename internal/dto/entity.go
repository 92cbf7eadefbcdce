package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create a reporting entity.
type CreateEntityRequest struct {
	Name              string `json:"name" binding:"required"`
	ReportingCurrency string `json:"reportingCurrency" binding:"required,currency"`
	YearStart         int    `json:"yearStart" binding:"omitempty,min=1,max=12"` // defaults to January
}

// EntityResponse defines the data returned for an entity.
type EntityResponse struct {
	EntityID          string    `json:"entityID"`
	Name              string    `json:"name"`
	ReportingCurrency string    `json:"reportingCurrency"`
	YearStart         int       `json:"yearStart"`
	CreatedAt         time.Time `json:"createdAt"`
	CreatedBy         string    `json:"createdBy"`
}

// ToEntityResponse converts a domain.Entity to EntityResponse DTO
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:          e.EntityID,
		Name:              e.Name,
		ReportingCurrency: e.ReportingCurrency,
		YearStart:         e.YearStart,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ReportingPeriodResponse defines the data returned for a reporting period.
type ReportingPeriodResponse struct {
	EntityID     string              `json:"entityID"`
	CalendarYear int                 `json:"calendarYear"`
	Status       domain.PeriodStatus `json:"status"`
	ClosingDate  *time.Time          `json:"closingDate,omitempty"`
}

// ToReportingPeriodResponse converts a domain.ReportingPeriod to its DTO
func ToReportingPeriodResponse(p *domain.ReportingPeriod) ReportingPeriodResponse {
	return ReportingPeriodResponse{
		EntityID:     p.EntityID,
		CalendarYear: p.CalendarYear,
		Status:       p.Status,
		ClosingDate:  p.ClosingDate,
	}
}
