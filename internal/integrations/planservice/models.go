package planservice

import "github.com/shopspring/decimal"

// TierPrice цена за занятие для тарифа (дней в неделю)
type TierPrice struct {
	DaysPerWeek int             `json:"days_per_week"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
}

// GlobalCapacity вместимость слота по умолчанию, настраивается в PlanService
type GlobalCapacity struct {
	Capacity int `json:"capacity"`
}

// MemberDiscount персональная скидка члена клуба в процентах
type MemberDiscount struct {
	MemberID    int64           `json:"member_id"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

// ErrorResponse модель ошибки от PlanService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
