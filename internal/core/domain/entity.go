package domain

import "time"

// Entity is the reporting unit that owns a ledger.
type Entity struct {
	EntityID          string `json:"entityID"`
	Name              string `json:"name"`
	ReportingCurrency string `json:"reportingCurrency"`
	YearStart         int    `json:"yearStart"` // month the fiscal year starts, 1-12
	AuditFields
}

func (e Entity) startMonth() time.Month {
	if e.YearStart < 1 || e.YearStart > 12 {
		return time.January
	}
	return time.Month(e.YearStart)
}

// Year returns the reporting period year a date falls into.
func (e Entity) Year(date time.Time) int {
	date = date.UTC()
	if date.Month() < e.startMonth() {
		return date.Year() - 1
	}
	return date.Year()
}

// PeriodStart returns the first instant of the reporting period containing date.
func (e Entity) PeriodStart(date time.Time) time.Time {
	return time.Date(e.Year(date), e.startMonth(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEnd returns the last instant of the reporting period containing date.
func (e Entity) PeriodEnd(date time.Time) time.Time {
	return e.PeriodStart(date).AddDate(1, 0, 0).Add(-time.Microsecond)
}

// YearStartDate returns the first instant of the given reporting year.
func (e Entity) YearStartDate(year int) time.Time {
	return time.Date(year, e.startMonth(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodStatus is the lifecycle state of a reporting period.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodAdjusting PeriodStatus = "ADJUSTING"
	PeriodClosed    PeriodStatus = "CLOSED"
)

// ReportingPeriod is one fiscal year of an entity.
type ReportingPeriod struct {
	ReportingPeriodID string       `json:"reportingPeriodID"`
	EntityID          string       `json:"entityID"`
	CalendarYear      int          `json:"calendarYear"`
	PeriodCount       int          `json:"periodCount"`
	Status            PeriodStatus `json:"status"`
	ClosingDate       *time.Time   `json:"closingDate,omitempty"`
	AuditFields
}

// IsClosed reports whether postings into the period are forbidden.
func (p ReportingPeriod) IsClosed() bool {
	return p.Status == PeriodClosed
}
