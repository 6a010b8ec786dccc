package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

// Service сервис чтения: состав занятия, история клиента, отдельная бронь
type Service struct {
	txManager    TransactionManager
	sessions     SessionRepository
	reservations ReservationRepository
	waitlist     WaitlistRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	txManager TransactionManager,
	sessions SessionRepository,
	reservations ReservationRepository,
	waitlist WaitlistRepository,
	logger Logger,
) *Service {
	return &Service{
		txManager:    txManager,
		sessions:     sessions,
		reservations: reservations,
		waitlist:     waitlist,
		logger:       logger,
	}
}

// GetRoster возвращает состав занятия: подтверждённые брони и очередь с позициями
// Все три чтения выполняются в одной read-only транзакции.
func (s *Service) GetRoster(ctx context.Context, sessionID int64) (*models.RosterResponse, error) {
	s.logger.Info("GetRoster: fetching roster for session=%d", sessionID)

	var (
		info    *domain.ClassSession
		active  []*domain.Reservation
		entries []*domain.WaitlistEntry
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if info, err = s.sessions.GetByID(ctx, sessionID); err != nil {
			return err
		}
		if active, err = s.reservations.GetActiveBySession(ctx, sessionID); err != nil {
			return err
		}
		entries, err = s.waitlist.GetBySession(ctx, sessionID)
		return err
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetRoster: session id=%d not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetRoster: repository error for session=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: GetRoster - repository error: %v", ErrInternal, err)
	}

	// агрегат восстанавливает порядок очереди и считает места так же, как при записи
	session, err := booking.NewSession(info, active, entries)
	if err != nil {
		s.logger.Error("GetRoster: FATAL ANOMALY session=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: GetRoster: %v", ErrInternal, err)
	}

	resp := &models.RosterResponse{
		Session:        models.FromDomainSession(session.Info()),
		ConfirmedCount: session.ConfirmedCount(),
		AvailableSeats: session.AvailableSeats(),
		Reservations:   make([]models.ReservationResponse, 0, session.ConfirmedCount()),
		Waitlist:       models.FromDomainWaitlist(session.Waitlist()),
	}
	for _, r := range session.ActiveReservations() {
		resp.Reservations = append(resp.Reservations, *models.FromDomainReservation(r))
	}

	s.logger.Info("GetRoster: session=%d has %d/%d confirmed, %d waitlisted",
		sessionID, resp.ConfirmedCount, info.Capacity, len(resp.Waitlist))
	return resp, nil
}

// GetClientActivity получает историю бронирований клиента
// Опционально фильтрует по статусу и периоду дат занятий
func (s *Service) GetClientActivity(ctx context.Context, req *models.GetClientActivityRequest) (*models.ClientActivityListResponse, error) {
	s.logger.Info("GetClientActivity: fetching reservations for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientActivity: invalid filter for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.reservations.GetByClientWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientActivity: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientActivity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientActivity: successfully fetched %d reservations for client=%d", len(items), req.ClientID)
	return models.FromDomainActivityList(items), nil
}

// GetReservation получает бронирование по ID
func (s *Service) GetReservation(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetReservation: fetching reservation id=%d", id)

	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetReservation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}
