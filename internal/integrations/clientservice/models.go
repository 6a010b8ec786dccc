package clientservice

// ClientStatus статус клиента в сервисе клиентов
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// StudioClient модель клиента студии
type StudioClient struct {
	ID       int64        `json:"id"`
	FullName string       `json:"full_name"`
	Email    *string      `json:"email,omitempty"`
	Phone    *string      `json:"phone,omitempty"`
	BranchID *int64       `json:"branch_id,omitempty"`
	Status   ClientStatus `json:"status"`
}

// IsActive возвращает true, если клиент может записываться на занятия
func (c *StudioClient) IsActive() bool {
	return c.Status == ClientStatusActive
}

// ErrorResponse модель ошибки от сервиса клиентов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
