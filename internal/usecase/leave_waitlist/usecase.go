package leave_waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
)

const operation = "withdraw"

// UseCase use case добровольного выхода из очереди ожидания
type UseCase struct {
	runner SessionRunner
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(runner SessionRunner, logger Logger) *UseCase {
	return &UseCase{
		runner: runner,
		logger: logger,
	}
}

// Execute убирает клиента из очереди; остальные сдвигаются, порядок сохраняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("LeaveWaitlist: session=%d, client=%d", req.SessionID, req.ClientID)

	if req.SessionID <= 0 || req.ClientID <= 0 {
		uc.logger.Warn("LeaveWaitlist: validation failed: session=%d client=%d", req.SessionID, req.ClientID)
		return nil, fmt.Errorf("%w: sessionId and clientId must be positive", ErrInvalidInput)
	}

	var outcome *booking.WithdrawOutcome
	_, err := uc.runner.Run(ctx, sessionflow.Operation{Name: operation, SessionID: req.SessionID},
		func(s *booking.Session, _ domain.Policy, _ time.Time) error {
			o, err := s.Withdraw(req.ClientID)
			if err != nil {
				return err
			}
			outcome = o
			return nil
		})

	if err != nil {
		if _, ok := booking.AsRejection(err); ok {
			uc.logger.Warn("LeaveWaitlist: session=%d client=%d rejected: %v", req.SessionID, req.ClientID, err)
			return nil, err
		}
		uc.logger.Error("LeaveWaitlist: session=%d client=%d failed: %v", req.SessionID, req.ClientID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !outcome.Removed {
		uc.logger.Info("LeaveWaitlist: client=%d is not waitlisted for session=%d", req.ClientID, req.SessionID)
	}

	return &Response{Removed: outcome.Removed}, nil
}
