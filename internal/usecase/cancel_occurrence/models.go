package cancel_occurrence

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// Request модель запроса на отмену занятия
type Request struct {
	MemberID    int64              // ID члена клуба
	Date        time.Time          // Дата занятия
	StartTime   types.TimeString   // Время начала слота
	EndTime     types.TimeString   // Время конца слота
	CancelledBy domain.CancelledBy // Инициатор отмены
	Reason      *string            // Причина (опционально)
}

// Response модель ответа с записанной отменой
type Response struct {
	ID          int64
	MemberID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	CancelledBy string
	IsLate      bool   // поздняя отмена тарифицируется
	Source      string // recurring | variable
	CreatedAt   time.Time

	// Event доменное событие для сервиса уведомлений
	Event domain.Event
}
