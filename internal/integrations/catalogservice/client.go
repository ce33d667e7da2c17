package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrUnavailable возвращается при недоступности каталога услуг
	ErrUnavailable = errors.New("catalogservice: service unavailable")
)

// Service услуга из каталога филиала
type Service struct {
	ID              int64   `json:"id"`
	BranchID        int64   `json:"branchId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP клиент каталога услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает клиента каталога услуг
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetService возвращает услугу филиала по ID
func (c *Client) GetService(ctx context.Context, branchID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/api/v1/branches/%d/services/%d", c.baseURL, branchID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalogservice: GetService - build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalogservice: GetService request failed: branch=%d, service=%d, error=%v", branchID, serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		c.logger.Error("catalogservice: GetService unexpected status: branch=%d, service=%d, status=%d", branchID, serviceID, resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return &service, nil
}
