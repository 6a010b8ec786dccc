package clientservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом клиентов студии
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса клиентов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClient получает клиента студии по ID
func (c *Client) GetClient(ctx context.Context, clientID int64) (*StudioClient, error) {
	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid client ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var client StudioClient
	if err := json.NewDecoder(resp.Body).Decode(&client); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &client, nil
}

// GetClientWithGracefulDegradation получает клиента с graceful degradation
// Отсутствие клиента пробрасывается как есть, любая другая ошибка превращается в ErrServiceDegraded,
// и вызывающая сторона может продолжить без проверки.
func (c *Client) GetClientWithGracefulDegradation(ctx context.Context, clientID int64) (*StudioClient, error) {
	client, err := c.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.log.Info("Client id=%d not found in client service", clientID)
			return nil, err
		}

		c.log.Error("Client service unavailable, applying graceful degradation for client_id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: client_id=%d, error=%v", ErrServiceDegraded, clientID, err)
	}

	return client, nil
}
