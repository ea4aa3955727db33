package domain

import "time"

// EventType тип доменного события
type EventType string

const (
	EventBookingCreated   EventType = "BookingCreated"
	EventBookingCancelled EventType = "BookingCancelled"
	EventInvoiceGenerated EventType = "InvoiceGenerated"
)

// Event доменное событие, возвращаемое мутирующими операциями ядра.
// Ядро не публикует события само: вызывающий слой пересылает их
// notification-коллаборатору (at-least-once, без гарантий порядка).
type Event struct {
	Type       EventType         `json:"event"`
	MemberID   int64             `json:"memberId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Payload    map[string]string `json:"payload,omitempty"`
}

// NewEvent создает событие с меткой времени
func NewEvent(t EventType, memberID int64, at time.Time, payload map[string]string) Event {
	return Event{Type: t, MemberID: memberID, OccurredAt: at, Payload: payload}
}
