package create_booking

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// Request модель запроса на разовое бронирование
type Request struct {
	MemberID  int64            // ID члена клуба
	Date      time.Time        // Дата занятия (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	MemberID       int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	SlotNumber     int // номер слота в разрешенном дне
	AvailableSpots int // свободные места после бронирования
	CreatedAt      time.Time

	// Event доменное событие для сервиса уведомлений
	Event domain.Event
}
