package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/policy/models"
)

// Service хранилище политики бронирования студии
// Политика читается заново в начале каждой операции бронирования и отмены.
type Service struct {
	repo     PolicyRepository
	fallback domain.Policy
	logger   Logger
}

// NewService создает сервис политики
// fallback используется, пока администратор не сохранил политику
func NewService(repo PolicyRepository, fallback domain.Policy, logger Logger) *Service {
	return &Service{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// Current возвращает действующую политику
func (s *Service) Current(ctx context.Context) (domain.Policy, error) {
	policy, _, err := s.load(ctx)
	if err != nil {
		return domain.Policy{}, err
	}
	return *policy, nil
}

// Get возвращает политику для администратора
func (s *Service) Get(ctx context.Context) (*models.PolicyResponse, error) {
	policy, isDefault, err := s.load(ctx)
	if err != nil {
		s.logger.Error("GetPolicy: %v", err)
		return nil, err
	}
	return models.FromDomainPolicy(policy, isDefault), nil
}

// Update обновляет пороги политики
// Изменение действует для всех операций, начатых после сохранения.
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: reservationLead=%v, cancellationLead=%v",
		fmtOptional(req.ReservationLeadMinutes), fmtOptional(req.CancellationLeadMinutes))

	if req.ReservationLeadMinutes == nil && req.CancellationLeadMinutes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	current, _, err := s.load(ctx)
	if err != nil {
		s.logger.Error("UpdatePolicy: %v", err)
		return nil, err
	}

	updated := *current
	if req.ReservationLeadMinutes != nil {
		updated.ReservationLeadMinutes = *req.ReservationLeadMinutes
	}
	if req.CancellationLeadMinutes != nil {
		updated.CancellationLeadMinutes = *req.CancellationLeadMinutes
	}

	if err := validatePolicy(updated); err != nil {
		s.logger.Warn("UpdatePolicy: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("UpdatePolicy: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: saved reservationLead=%d, cancellationLead=%d",
		saved.ReservationLeadMinutes, saved.CancellationLeadMinutes)
	return models.FromDomainPolicy(saved, false), nil
}

func (s *Service) load(ctx context.Context) (*domain.Policy, bool, error) {
	policy, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			fallback := s.fallback
			return &fallback, true, nil
		}
		return nil, false, fmt.Errorf("%w: load policy: %w", ErrInternal, err)
	}
	return policy, false, nil
}

func validatePolicy(p domain.Policy) error {
	if p.ReservationLeadMinutes < domain.MinLeadMinutes || p.ReservationLeadMinutes > domain.MaxLeadMinutes {
		return fmt.Errorf("%w: reservationLeadMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadMinutes, domain.MaxLeadMinutes)
	}
	if p.CancellationLeadMinutes < domain.MinLeadMinutes || p.CancellationLeadMinutes > domain.MaxLeadMinutes {
		return fmt.Errorf("%w: cancellationLeadMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadMinutes, domain.MaxLeadMinutes)
	}
	return nil
}

func fmtOptional(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
