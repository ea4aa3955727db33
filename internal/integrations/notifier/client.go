// Package notifier отправляет доменные события во внешний сервис уведомлений.
// Доставка best-effort: ошибка отправки логируется и не влияет на операцию,
// породившую событие.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	enabled    bool
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений.
// При enabled == false Publish превращается в no-op (локальная разработка, тесты).
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		enabled: enabled,
		log:     log,
	}
}

// Publish отправляет событие с одной повторной попыткой.
// Ошибка логируется, но не возвращается наверх: уведомления не должны
// откатывать бронирование или счет.
func (c *Client) Publish(ctx context.Context, event domain.Event) {
	if !c.enabled {
		return
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			// Короткая пауза перед повтором
			select {
			case <-ctx.Done():
				c.log.Warn("Notification delivery aborted for %s: %v", event.Type, ctx.Err())
				return
			case <-time.After(200 * time.Millisecond):
			}
		}
		if lastErr = c.send(ctx, event); lastErr == nil {
			return
		}
	}
	c.log.Error("Failed to deliver %s notification for member_id=%d: %v", event.Type, event.MemberID, lastErr)
}

// PublishAll отправляет пачку событий
func (c *Client) PublishAll(ctx context.Context, events []domain.Event) {
	for _, event := range events {
		c.Publish(ctx, event)
	}
}

func (c *Client) send(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
