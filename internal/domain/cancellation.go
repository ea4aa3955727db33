package domain

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// CancelledBy кто инициировал отмену
type CancelledBy string

const (
	CancelledByMember CancelledBy = "member"
	CancelledByAdmin  CancelledBy = "admin"
	CancelledBySystem CancelledBy = "system"
)

// Cancellation append-only ledger row recording that one date's occurrence of
// a booking will not be attended. (MemberID, Date, StartTime, EndTime) is
// unique: re-cancelling the same occurrence is rejected, never duplicated.
type Cancellation struct {
	ID          int64
	MemberID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	CancelledBy CancelledBy
	IsLate      bool
	Reason      *string

	CreatedAt time.Time
}

// IsEarly отмена с достаточным предупреждением — класс не тарифицируется
func (c *Cancellation) IsEarly() bool {
	return !c.IsLate
}

// ClassifyLateness вычисляет признак "поздней" отмены: до начала занятия
// осталось меньше cutoff. Занятия в прошлом всегда считаются поздней отменой —
// ретроактивно "ранней" отмены не бывает.
//
//	ClassifyLateness(start, start.Add(-24h-1s), 24h) == false  // early
//	ClassifyLateness(start, start.Add(-23h59m59s), 24h) == true // late
func ClassifyLateness(sessionStart, now time.Time, cutoff time.Duration) bool {
	return sessionStart.Sub(now) < cutoff
}

// CancellationKey натуральный ключ вхождения для журнала отмен
type CancellationKey struct {
	MemberID  int64
	Date      string // DateFormat
	StartTime types.TimeString
	EndTime   types.TimeString
}

// KeyOf строит ключ журнала отмен для вхождения
func KeyOf(memberID int64, date time.Time, start, end types.TimeString) CancellationKey {
	return CancellationKey{
		MemberID:  memberID,
		Date:      date.Format(DateFormat),
		StartTime: start,
		EndTime:   end,
	}
}

// Key возвращает натуральный ключ записи журнала
func (c *Cancellation) Key() CancellationKey {
	return KeyOf(c.MemberID, c.Date, c.StartTime, c.EndTime)
}
