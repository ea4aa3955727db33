package generate_invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
)

// Request модель запроса на генерацию счета
type Request struct {
	MemberID int64
	Year     int
	Month    int // 1..12
}

// Response модель ответа со сгенерированным счетом
type Response struct {
	MemberID         int64
	Year             int
	Month            int
	ClassesScheduled int
	ClassesBilled    int
	UnitPrice        decimal.Decimal
	GrossAmount      decimal.Decimal
	DiscountPct      decimal.Decimal
	NetAmount        decimal.Decimal
	GeneratedAt      time.Time

	// Event доменное событие для сервиса уведомлений
	Event domain.Event
}

func toResponse(inv *domain.MonthlyInvoice, event domain.Event) *Response {
	return &Response{
		MemberID:         inv.MemberID,
		Year:             inv.Year,
		Month:            inv.Month,
		ClassesScheduled: inv.ClassesScheduled,
		ClassesBilled:    inv.ClassesBilled,
		UnitPrice:        inv.UnitPrice,
		GrossAmount:      inv.GrossAmount,
		DiscountPct:      inv.DiscountPct,
		NetAmount:        inv.NetAmount,
		GeneratedAt:      inv.GeneratedAt,
		Event:            event,
	}
}
