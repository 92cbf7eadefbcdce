package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type entityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new entity service.
func NewEntityService(repo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: repo}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, userID string) (*domain.Entity, error) {
	currency := strings.ToUpper(req.ReportingCurrency)
	if money.GetCurrency(currency) == nil {
		return nil, apperrors.NewValidationError("unknown reporting currency %q", req.ReportingCurrency)
	}
	yearStart := req.YearStart
	if yearStart == 0 {
		yearStart = int(time.January)
	}

	now := time.Now().UTC()
	entity := domain.Entity{
		EntityID:          uuid.NewString(),
		Name:              req.Name,
		ReportingCurrency: currency,
		YearStart:         yearStart,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to save entity", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Entity created", slog.String("entity_id", entity.EntityID))
	return &entity, nil
}

func (s *entityService) GetEntity(ctx context.Context, entityID string) (*domain.Entity, error) {
	return s.entityRepo.FindEntityByID(ctx, entityID)
}

func (s *entityService) GetReportingPeriod(ctx context.Context, entityID string, year int) (*domain.ReportingPeriod, error) {
	period, err := s.entityRepo.FindReportingPeriod(ctx, entityID, year)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return &domain.ReportingPeriod{
		EntityID:     entityID,
		CalendarYear: year,
		PeriodCount:  12,
		Status:       domain.PeriodOpen,
	}, nil
}

func (s *entityService) ClosePeriod(ctx context.Context, lctx domain.LedgerContext, year int) (*domain.ReportingPeriod, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, lctx.EntityID)
	if err != nil {
		return nil, err
	}
	period, err := s.GetReportingPeriod(ctx, lctx.EntityID, year)
	if err != nil {
		return nil, err
	}
	if period.IsClosed() {
		return period, nil
	}

	now := time.Now().UTC()
	closing := entity.YearStartDate(year).AddDate(1, 0, 0).Add(-time.Microsecond)
	if period.ReportingPeriodID == "" {
		period.ReportingPeriodID = uuid.NewString()
		period.CreatedAt = now
		period.CreatedBy = lctx.UserID
	}
	period.Status = domain.PeriodClosed
	period.ClosingDate = &closing
	period.LastUpdatedAt = now
	period.LastUpdatedBy = lctx.UserID

	if err := s.entityRepo.SaveReportingPeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to close reporting period",
			slog.String("entity_id", lctx.EntityID), slog.Int("year", year))
		return nil, err
	}
	s.LogInfo(ctx, "Reporting period closed", slog.String("entity_id", lctx.EntityID), slog.Int("year", year))
	return period, nil
}
