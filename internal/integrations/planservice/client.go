package planservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client клиент для работы с PlanService (тарифная сетка и скидки)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PlanService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTierPrice получает цену за занятие для тарифа (дней в неделю)
func (c *Client) GetTierPrice(ctx context.Context, daysPerWeek int) (*TierPrice, error) {
	url := fmt.Sprintf("%s/internal/plans/tiers/%d/price", c.baseURL, daysPerWeek)

	var price TierPrice
	if err := c.getJSON(ctx, url, &price, ErrPriceNotFound); err != nil {
		return nil, err
	}
	return &price, nil
}

// GetGlobalCapacity получает вместимость слота по умолчанию
func (c *Client) GetGlobalCapacity(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/internal/plans/capacity", c.baseURL)

	var capacity GlobalCapacity
	if err := c.getJSON(ctx, url, &capacity, ErrCapacityNotFound); err != nil {
		return 0, err
	}
	return capacity.Capacity, nil
}

// GetGlobalCapacityWithGracefulDegradation получает вместимость по умолчанию
// с graceful degradation: при недоступности PlanService расписание работает
// на значении из локальной конфигурации.
func (c *Client) GetGlobalCapacityWithGracefulDegradation(ctx context.Context, fallback int) int {
	capacity, err := c.GetGlobalCapacity(ctx)
	if err != nil {
		c.log.Error("PlanService unavailable, using fallback capacity %d: %v", fallback, err)
		return fallback
	}
	if capacity <= 0 {
		return fallback
	}
	return capacity
}

// GetMemberDiscount получает персональную скидку члена клуба.
// Отсутствие скидки не ошибка: при 404 возвращается ноль.
func (c *Client) GetMemberDiscount(ctx context.Context, memberID int64) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/internal/members/%d/discount", c.baseURL, memberID)

	var discount MemberDiscount
	err := c.getJSON(ctx, url, &discount, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return discount.DiscountPct, nil
}

// GetMemberDiscountWithGracefulDegradation получает скидку с graceful degradation.
// При недоступности PlanService счет генерируется без скидки, чтобы биллинг
// не останавливался из-за внешнего сервиса.
func (c *Client) GetMemberDiscountWithGracefulDegradation(ctx context.Context, memberID int64) decimal.Decimal {
	discount, err := c.GetMemberDiscount(ctx, memberID)
	if err != nil {
		c.log.Error("PlanService unavailable, billing without discount for member_id=%d: %v", memberID, err)
		return decimal.Zero
	}
	return discount
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ в out.
// При 404: если задан notFound, возвращается он; иначе 404 означает
// отсутствие значения и out остается нулевым.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
