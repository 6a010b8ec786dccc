package cancel_class

// Request модель запроса на отмену занятия студией
type Request struct {
	SessionID int64
}

// Response результат отмены занятия
type Response struct {
	SessionID              int64
	AffectedReservationIDs []int64 // отменённые брони, каждой отправлен возврат кредита
	RefundedCount          int
	DiscardedWaitlistCount int // записи очереди, удалённые без продвижения
}
