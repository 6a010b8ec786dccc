package reserve_class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/clientservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
)

const operation = "reserve"

// UseCase use case записи клиента на занятие
type UseCase struct {
	runner  SessionRunner
	clients ClientServiceClient
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
// clients может быть nil, если сервис клиентов отключен
func NewUseCase(runner SessionRunner, clients ClientServiceClient, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		runner:  runner,
		clients: clients,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute выполняет запись: подтверждённое место, очередь ожидания или отказ
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Reserve: session=%d, client=%d", req.SessionID, req.ClientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Reserve: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем клиента (вне блокировки занятия)
	if err := uc.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	// 3. Операция над занятием
	var outcome *booking.ReserveOutcome
	_, err := uc.runner.Run(ctx, sessionflow.Operation{Name: operation, SessionID: req.SessionID},
		func(s *booking.Session, policy domain.Policy, now time.Time) error {
			o, err := s.Reserve(req.ClientID, req.ClientPlanID, now, policy)
			if err != nil {
				return err
			}
			outcome = o
			return nil
		})

	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			uc.logger.Warn("Reserve: session=%d client=%d rejected: %v", req.SessionID, req.ClientID, rej)
			uc.metrics.IncBookingOutcome(operation, "rejected", string(rej.Reason))
			return nil, err
		}
		uc.logger.Error("Reserve: session=%d client=%d failed: %v", req.SessionID, req.ClientID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingOutcome(operation, string(outcome.Kind), "")

	if outcome.Kind == booking.Confirmed {
		uc.logger.Info("Reserve: session=%d client=%d confirmed, reservation=%d",
			req.SessionID, req.ClientID, outcome.Reservation.ID)
		return &Response{Outcome: booking.Confirmed, Reservation: outcome.Reservation}, nil
	}

	uc.logger.Info("Reserve: session=%d client=%d waitlisted at position %d",
		req.SessionID, req.ClientID, outcome.Position)
	return &Response{Outcome: booking.Waitlisted, Entry: outcome.Entry, Position: outcome.Position}, nil
}

// checkClient проверяет клиента во внешнем сервисе
// Недоступность сервиса не блокирует запись.
func (uc *UseCase) checkClient(ctx context.Context, clientID int64) error {
	if uc.clients == nil {
		return nil
	}

	client, err := uc.clients.GetClientWithGracefulDegradation(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientservice.ErrClientNotFound) {
			uc.logger.Warn("Reserve: client id=%d not found", clientID)
			return ErrClientNotFound
		}
		if errors.Is(err, clientservice.ErrServiceDegraded) {
			uc.logger.Warn("Reserve: client check skipped for client=%d: %v", clientID, err)
			return nil
		}
		uc.logger.Error("Reserve: failed to get client id=%d: %v", clientID, err)
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	if !client.IsActive() {
		uc.logger.Warn("Reserve: client id=%d is %s", clientID, client.Status)
		return ErrClientInactive
	}

	return nil
}

func validateRequest(req *Request) error {
	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionId must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}
	if req.ClientPlanID != nil && *req.ClientPlanID <= 0 {
		return fmt.Errorf("%w: clientPlanId must be positive", ErrInvalidInput)
	}
	return nil
}
