package sessionflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/booking"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
	sessionRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/session"
)

// Operation описание операции над занятием
type Operation struct {
	Name         string              // для логов и метрик: reserve, cancel, cancel_class, withdraw
	SessionID    int64
	RefundReason events.RefundReason // причина в сигналах возврата кредита
}

// ApplyFunc применяет операцию к агрегату
// Может вызываться повторно, если транзакция перезапускается.
type ApplyFunc func(s *booking.Session, policy domain.Policy, now time.Time) error

// Runner проводит операцию над занятием целиком:
// блокировка -> транзакция -> загрузка агрегата -> операция -> сохранение -> фиксация -> сигналы
type Runner struct {
	locker       Locker
	txManager    TransactionManager
	sessions     SessionRepository
	reservations ReservationRepository
	waitlist     WaitlistRepository
	policies     PolicyProvider
	publisher    SignalPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewRunner создает исполнителя операций над занятиями
func NewRunner(
	locker Locker,
	txManager TransactionManager,
	sessions SessionRepository,
	reservations ReservationRepository,
	waitlist WaitlistRepository,
	policies PolicyProvider,
	publisher SignalPublisher,
	metrics Metrics,
	logger Logger,
) *Runner {
	return &Runner{
		locker:       locker,
		txManager:    txManager,
		sessions:     sessions,
		reservations: reservations,
		waitlist:     waitlist,
		policies:     policies,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет часы (для тестов)
func (r *Runner) WithTimeProvider(tp TimeProvider) *Runner {
	r.timeProvider = tp
	return r
}

// SessionLockKey ключ блокировки занятия
func SessionLockKey(sessionID int64) string {
	return fmt.Sprintf("session:%d", sessionID)
}

// Run выполняет операцию и возвращает зафиксированные изменения
// Отказы движка (*booking.RejectionError) возвращаются как есть.
func (r *Runner) Run(ctx context.Context, op Operation, apply ApplyFunc) (booking.Changes, error) {
	unlock, err := r.locker.Lock(ctx, SessionLockKey(op.SessionID))
	if err != nil {
		r.logger.Error("%s: session=%d lock failed: %v", op.Name, op.SessionID, err)
		return booking.Changes{}, fmt.Errorf("%w: session=%d: %w", ErrLock, op.SessionID, err)
	}
	defer unlock()

	var changes booking.Changes
	err = r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// при перезапуске транзакции всё начинается с чистого агрегата
		changes = booking.Changes{}

		session, policy, err := r.load(txCtx, op.SessionID)
		if err != nil {
			return err
		}

		if err := apply(session, policy, r.timeProvider.Now()); err != nil {
			return err
		}

		changes = session.Changes()
		return r.persist(txCtx, op.SessionID, changes)
	})

	if err != nil {
		if errors.Is(err, booking.ErrInvariantViolation) {
			r.logger.Error("%s: FATAL ANOMALY session=%d: %v", op.Name, op.SessionID, err)
			r.metrics.IncInvariantViolation(op.Name)
		}
		return booking.Changes{}, err
	}

	// Сигналы уходят после фиксации и снятия блокировки
	unlock()
	r.emit(ctx, op, changes)

	return changes, nil
}

func (r *Runner) load(ctx context.Context, sessionID int64) (*booking.Session, domain.Policy, error) {
	info, err := r.sessions.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, domain.Policy{}, fmt.Errorf("%w: session=%d", booking.ErrNotFound, sessionID)
		}
		return nil, domain.Policy{}, fmt.Errorf("%w: session=%d: %w", ErrLoad, sessionID, err)
	}

	active, err := r.reservations.GetActiveBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.Policy{}, fmt.Errorf("%w: active reservations session=%d: %w", ErrLoad, sessionID, err)
	}

	entries, err := r.waitlist.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.Policy{}, fmt.Errorf("%w: waitlist session=%d: %w", ErrLoad, sessionID, err)
	}

	policy, err := r.policies.Current(ctx)
	if err != nil {
		return nil, domain.Policy{}, fmt.Errorf("%w: policy: %w", ErrLoad, err)
	}

	session, err := booking.NewSession(info, active, entries)
	if err != nil {
		return nil, domain.Policy{}, err
	}

	return session, policy, nil
}

// persist сохраняет каждое изменение агрегата ровно один раз
// Сначала освобождаем (отмены, удаление из очереди), потом занимаем.
func (r *Runner) persist(ctx context.Context, sessionID int64, changes booking.Changes) error {
	for _, reservation := range changes.UpdatedReservations {
		if err := r.reservations.UpdateCancellation(ctx, reservation); err != nil {
			return fmt.Errorf("%w: cancel reservation=%d: %w", ErrPersist, reservation.ID, err)
		}
	}

	for _, entry := range changes.RemovedEntries {
		if err := r.waitlist.Delete(ctx, entry.ID); err != nil {
			return fmt.Errorf("%w: remove waitlist entry=%d: %w", ErrPersist, entry.ID, err)
		}
	}

	for _, reservation := range changes.CreatedReservations {
		if _, err := r.reservations.Create(ctx, reservation); err != nil {
			return fmt.Errorf("%w: create reservation client=%d: %w", ErrPersist, reservation.ClientID, err)
		}
	}

	for _, entry := range changes.CreatedEntries {
		if _, err := r.waitlist.Create(ctx, entry); err != nil {
			return fmt.Errorf("%w: enqueue client=%d: %w", ErrPersist, entry.ClientID, err)
		}
	}

	if changes.SessionStatus != nil {
		if err := r.sessions.UpdateStatus(ctx, sessionID, *changes.SessionStatus, r.timeProvider.Now()); err != nil {
			return fmt.Errorf("%w: session=%d status=%s: %w", ErrPersist, sessionID, *changes.SessionStatus, err)
		}
	}

	return nil
}

// emit отправляет сигналы без влияния на результат операции
func (r *Runner) emit(ctx context.Context, op Operation, changes booking.Changes) {
	// запрос мог уже завершиться, сигнал всё равно должен уйти
	ctx = context.WithoutCancel(ctx)
	now := r.timeProvider.Now()

	for _, reservation := range changes.Refunds {
		event := events.CreditRefund{
			ReservationID: reservation.ID,
			SessionID:     reservation.SessionID,
			ClientID:      reservation.ClientID,
			ClientPlanID:  reservation.ClientPlanID,
			Reason:        op.RefundReason,
			EmittedAt:     now,
		}
		if err := r.publisher.PublishCreditRefund(ctx, event); err != nil {
			r.logger.Error("%s: credit refund for reservation=%d not delivered: %v", op.Name, reservation.ID, err)
			r.metrics.IncSignal("credit_refund", "failed")
			continue
		}
		r.metrics.IncSignal("credit_refund", "sent")
	}

	for _, promotion := range changes.Promotions {
		r.logger.Info("%s: session=%d client=%d promoted from waitlist, reservation=%d",
			op.Name, op.SessionID, promotion.Reservation.ClientID, promotion.Reservation.ID)
		r.metrics.IncBookingOutcome(op.Name, "promoted", "")

		event := events.WaitlistPromotion{
			SessionID:     op.SessionID,
			ClientID:      promotion.Reservation.ClientID,
			ReservationID: promotion.Reservation.ID,
			PromotedAt:    promotion.Reservation.CreatedAt,
		}
		if err := r.publisher.PublishPromotion(ctx, event); err != nil {
			r.logger.Error("%s: promotion notice for client=%d not delivered: %v", op.Name, promotion.Reservation.ClientID, err)
			r.metrics.IncSignal("waitlist_promoted", "failed")
			continue
		}
		r.metrics.IncSignal("waitlist_promoted", "sent")
	}
}
