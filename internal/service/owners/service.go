package owners

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	profileRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/profile"
	"github.com/m04kA/SC-CanteenService/internal/service/owners/models"
)

// Service сервис модерации владельцев столовых
type Service struct {
	profileRepo  ProfileRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса модерации
func NewService(profileRepo ProfileRepository, logger Logger) *Service {
	return &Service{
		profileRepo:  profileRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetPending получает владельцев, ожидающих модерации
func (s *Service) GetPending(ctx context.Context) (*models.OwnerListResponse, error) {
	s.logger.Info("GetPending: fetching pending owners")

	profiles, err := s.profileRepo.GetPendingOwners(ctx)
	if err != nil {
		s.logger.Error("GetPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPending: fetched %d pending owners", len(profiles))
	return models.FromDomainProfileList(profiles), nil
}

// Decide рассматривает заявку владельца: одобряет или отклоняет
func (s *Service) Decide(ctx context.Context, ownerID uuid.UUID, req *models.DecideOwnerRequest) (*models.OwnerResponse, error) {
	s.logger.Info("Decide: owner=%s approve=%t", ownerID, req.Approve)

	profile, err := s.profileRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Decide: owner id=%s not found", ownerID)
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("Decide: repository error for owner id=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	if profile.Role != domain.RoleOwner {
		s.logger.Warn("Decide: profile id=%s has role %s", ownerID, profile.Role)
		return nil, ErrNotAnOwner
	}

	if profile.ApprovalStatus != nil && *profile.ApprovalStatus != domain.ApprovalPending {
		s.logger.Warn("Decide: owner id=%s already decided: %s", ownerID, *profile.ApprovalStatus)
		return nil, ErrAlreadyDecided
	}

	status := domain.ApprovalRejected
	if req.Approve {
		status = domain.ApprovalApproved
	}

	decidedAt := s.timeProvider.Now()
	if err := s.profileRepo.SetApprovalStatus(ctx, ownerID, status, decidedAt); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("Decide: repository error for owner id=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	profile.ApprovalStatus = &status
	profile.ApprovalDate = &decidedAt

	s.logger.Info("Decide: owner id=%s is now %s", ownerID, status)
	return models.FromDomainProfile(profile), nil
}
