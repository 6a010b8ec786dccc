package cancel_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

const operation = "cancel"

// UseCase use case отмены брони клиентом
type UseCase struct {
	runner       SessionRunner
	reservations ReservationRepository
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(runner SessionRunner, reservations ReservationRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		runner:       runner,
		reservations: reservations,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute отменяет бронь, возвращает кредит при своевременной отмене
// и отдаёт освободившееся место первому клиенту из очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Cancel: reservation=%d", req.ReservationID)

	if req.ReservationID <= 0 {
		uc.logger.Warn("Cancel: validation failed: reservationId=%d", req.ReservationID)
		return nil, fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}

	// 1. Узнаём занятие брони (вне блокировки, сама бронь перепроверяется под ней)
	existing, err := uc.reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, uc.reject(req.ReservationID, fmt.Errorf("%w: reservation=%d", booking.ErrNotFound, req.ReservationID))
		}
		uc.logger.Error("Cancel: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// повторная отмена
	if !existing.IsActive() {
		return nil, uc.reject(req.ReservationID, fmt.Errorf("%w: reservation=%d is %s",
			booking.ErrNotFound, req.ReservationID, existing.Status))
	}

	// 2. Отмена и продвижение под блокировкой занятия
	var outcome *booking.CancelOutcome
	op := sessionflow.Operation{
		Name:         operation,
		SessionID:    existing.SessionID,
		RefundReason: events.RefundClientCancelledOnTime,
	}
	_, err = uc.runner.Run(ctx, op, func(s *booking.Session, policy domain.Policy, now time.Time) error {
		o, err := s.Cancel(req.ReservationID, now, policy)
		if err != nil {
			return err
		}
		outcome = o
		return nil
	})

	if err != nil {
		if _, ok := booking.AsRejection(err); ok {
			return nil, uc.reject(req.ReservationID, err)
		}
		uc.logger.Error("Cancel: reservation=%d failed: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingOutcome(operation, string(outcome.Reservation.Status), "")
	uc.logger.Info("Cancel: reservation=%d %s, refund=%t",
		req.ReservationID, outcome.Reservation.Status, outcome.RefundIssued)

	resp := &Response{
		Kind:         outcome.Kind,
		Reservation:  outcome.Reservation,
		RefundIssued: outcome.RefundIssued,
	}
	if outcome.Promotion != nil {
		resp.PromotedClientID = ptr.Ptr(outcome.Promotion.Reservation.ClientID)
		resp.PromotedReservationID = ptr.Ptr(outcome.Promotion.Reservation.ID)
	}

	return resp, nil
}

func (uc *UseCase) reject(reservationID int64, err error) error {
	rej, _ := booking.AsRejection(err)
	uc.logger.Warn("Cancel: reservation=%d rejected: %v", reservationID, err)
	uc.metrics.IncBookingOutcome(operation, "rejected", string(rej.Reason))
	return err
}
