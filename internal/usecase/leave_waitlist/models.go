package leave_waitlist

// Request модель запроса на выход из очереди
type Request struct {
	SessionID int64
	ClientID  int64
}

// Response результат выхода из очереди
type Response struct {
	Removed bool // false, если клиента в очереди не было
}
