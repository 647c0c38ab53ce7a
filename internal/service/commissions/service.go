package commissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
)

// Service сервис расчета комиссий площадки
type Service struct {
	commissionRepo CommissionRepository
	profileRepo    ProfileRepository
	rate           float64
	logger         Logger
}

// NewService создает новый экземпляр сервиса комиссий
// rate <= 0 заменяется ставкой по умолчанию
func NewService(commissionRepo CommissionRepository, profileRepo ProfileRepository, rate float64, logger Logger) *Service {
	if rate <= 0 {
		rate = domain.DefaultCommissionRate
	}
	return &Service{
		commissionRepo: commissionRepo,
		profileRepo:    profileRepo,
		rate:           rate,
		logger:         logger,
	}
}

// List получает все записи комиссий
func (s *Service) List(ctx context.Context) (*models.CommissionListResponse, error) {
	s.logger.Info("List: fetching commission records")

	records, err := s.commissionRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecordList(records), nil
}

// ListByOwner получает записи комиссий конкретного владельца
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) (*models.CommissionListResponse, error) {
	s.logger.Info("ListByOwner: fetching commissions for owner=%s", ownerID)

	records, err := s.commissionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecordList(records), nil
}

// GenerateForMonth рассчитывает комиссии всех владельцев за месяц
// Доход считается по выданным заказам; повторный запуск перезаписывает записи месяца
func (s *Service) GenerateForMonth(ctx context.Context, req *models.GenerateRequest) (*models.CommissionListResponse, error) {
	s.logger.Info("GenerateForMonth: month=%s rate=%.2f", req.Month, s.rate)

	monthStart, err := time.Parse(domain.MonthFormat, req.Month)
	if err != nil {
		s.logger.Warn("GenerateForMonth: invalid month=%s", req.Month)
		return nil, fmt.Errorf("%w: expected YYYY-MM", ErrInvalidMonth)
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	income, err := s.commissionRepo.IncomeByOwnerForMonth(ctx, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("GenerateForMonth: failed to aggregate income for month=%s: %v", req.Month, err)
		return nil, fmt.Errorf("%w: GenerateForMonth - repository error: %v", ErrInternal, err)
	}

	records := make([]*domain.CommissionRecord, 0, len(income))
	for ownerID, total := range income {
		ownerName := ""
		profile, err := s.profileRepo.GetByID(ctx, ownerID)
		if err != nil {
			// Владелец мог быть удален, запись все равно сохраняем
			s.logger.Warn("GenerateForMonth: failed to get owner id=%s: %v", ownerID, err)
		} else {
			if profile.CanteenName != nil {
				ownerName = *profile.CanteenName
			} else {
				ownerName = profile.Username
			}
		}

		record := &domain.CommissionRecord{
			Month:            req.Month,
			TotalIncome:      total,
			CommissionAmount: total * s.rate,
			OwnerID:          ownerID,
			OwnerName:        ownerName,
		}

		if err := s.commissionRepo.Upsert(ctx, record); err != nil {
			s.logger.Error("GenerateForMonth: failed to upsert record for owner=%s: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GenerateForMonth - repository error: %v", ErrInternal, err)
		}

		records = append(records, record)
	}

	s.logger.Info("GenerateForMonth: generated %d records for month=%s", len(records), req.Month)
	return models.FromDomainRecordList(records), nil
}
