package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event уведомление о событии бронирования.
// Доставка best-effort: ошибки логируются, но не влияют на основную операцию.
type Event struct {
	Type      string `json:"type"` // booking_confirmed | booking_cancelled
	BookingID int64  `json:"bookingId"`
	ClientID  int64  `json:"clientId"`
	StaffID   int64  `json:"staffId"`
}

// Client HTTP клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Send отправляет уведомление. Вызывается после коммита основной операции;
// ошибка доставки только логируется вызывающей стороной.
func (c *Client) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifyservice: Send - marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notifyservice: Send - build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notifyservice: Send - request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notifyservice: Send - unexpected status %d", resp.StatusCode)
	}

	return nil
}
