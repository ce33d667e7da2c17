package scheduleservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP клиент сервиса расписаний персонала.
// Рабочие часы мастеров ведутся снаружи; ядро бронирования только читает их.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает клиента сервиса расписаний
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetStaffSchedule возвращает рабочие часы мастера на дату
func (c *Client) GetStaffSchedule(ctx context.Context, staffID int64, date time.Time) (*StaffDaySchedule, error) {
	url := fmt.Sprintf("%s/api/v1/staff/%d/schedule?date=%s", c.baseURL, staffID, date.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("scheduleservice: GetStaffSchedule - build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("scheduleservice: GetStaffSchedule request failed: staff_id=%d, error=%v", staffID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrStaffNotFound
	default:
		c.logger.Error("scheduleservice: GetStaffSchedule unexpected status: staff_id=%d, status=%d", staffID, resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var schedule StaffDaySchedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return &schedule, nil
}
