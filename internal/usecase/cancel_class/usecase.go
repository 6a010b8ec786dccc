package cancel_class

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
)

const operation = "cancel_class"

// UseCase use case отмены занятия студией
type UseCase struct {
	runner  SessionRunner
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(runner SessionRunner, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		runner:  runner,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute отменяет занятие: все активные брони с возвратом кредита, очередь очищается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelClass: session=%d", req.SessionID)

	if req.SessionID <= 0 {
		uc.logger.Warn("CancelClass: validation failed: sessionId=%d", req.SessionID)
		return nil, fmt.Errorf("%w: sessionId must be positive", ErrInvalidInput)
	}

	var outcome *booking.CancelClassOutcome
	op := sessionflow.Operation{
		Name:         operation,
		SessionID:    req.SessionID,
		RefundReason: events.RefundClassCancelled,
	}
	_, err := uc.runner.Run(ctx, op, func(s *booking.Session, _ domain.Policy, now time.Time) error {
		o, err := s.CancelClass(now)
		if err != nil {
			return err
		}
		outcome = o
		return nil
	})

	if err != nil {
		if rej, ok := booking.AsRejection(err); ok {
			uc.logger.Warn("CancelClass: session=%d rejected: %v", req.SessionID, err)
			uc.metrics.IncBookingOutcome(operation, "rejected", string(rej.Reason))
			return nil, err
		}
		uc.logger.Error("CancelClass: session=%d failed: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingOutcome(operation, "cancelled", "")
	uc.logger.Info("CancelClass: session=%d cancelled, refunded=%d, waitlist discarded=%d",
		req.SessionID, outcome.RefundedCount, len(outcome.DiscardedEntries))

	return &Response{
		SessionID:              req.SessionID,
		AffectedReservationIDs: outcome.AffectedReservationIDs(),
		RefundedCount:          outcome.RefundedCount,
		DiscardedWaitlistCount: len(outcome.DiscardedEntries),
	}, nil
}
