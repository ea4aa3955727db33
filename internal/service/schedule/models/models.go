package models

import (
	"time"

	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/types"
)

// UpsertSlotRequest запрос на создание/обновление слота недельного шаблона
type UpsertSlotRequest struct {
	Weekday    int
	SlotNumber int
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int // 0 — глобальное значение по умолчанию
	Active     bool
}

// ToDomainSlot конвертирует запрос в доменную модель
func (r *UpsertSlotRequest) ToDomainSlot() *domain.SlotDefinition {
	return &domain.SlotDefinition{
		Weekday:    r.Weekday,
		SlotNumber: r.SlotNumber,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Capacity:   r.Capacity,
		Active:     r.Active,
	}
}

// SlotResponse определение слота недельного шаблона
type SlotResponse struct {
	ID         int64
	Weekday    int
	SlotNumber int
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FromDomainSlot конвертирует доменную модель в ответ
func FromDomainSlot(d *domain.SlotDefinition) *SlotResponse {
	return &SlotResponse{
		ID:         d.ID,
		Weekday:    d.Weekday,
		SlotNumber: d.SlotNumber,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		Capacity:   d.Capacity,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// CustomSlot кастомный слот исключения календаря
type CustomSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// CreateExceptionRequest запрос на создание исключения календаря
type CreateExceptionRequest struct {
	Date        time.Time
	Kind        domain.ExceptionKind
	CustomSlots []CustomSlot
}

// ToDomainException конвертирует запрос в доменную модель
func (r *CreateExceptionRequest) ToDomainException() *domain.ExceptionDay {
	slots := make([]domain.CustomSlot, 0, len(r.CustomSlots))
	for _, cs := range r.CustomSlots {
		slots = append(slots, domain.CustomSlot{
			StartTime: cs.StartTime,
			EndTime:   cs.EndTime,
			Capacity:  cs.Capacity,
		})
	}
	return &domain.ExceptionDay{
		Date:        r.Date,
		Kind:        r.Kind,
		CustomSlots: slots,
		Active:      true,
	}
}

// ExceptionResponse исключение календаря
type ExceptionResponse struct {
	ID          int64
	Date        time.Time
	Kind        string
	CustomSlots []CustomSlot
	Active      bool
	CreatedAt   time.Time
}

// FromDomainException конвертирует доменную модель в ответ
func FromDomainException(d *domain.ExceptionDay) *ExceptionResponse {
	slots := make([]CustomSlot, 0, len(d.CustomSlots))
	for _, cs := range d.CustomSlots {
		slots = append(slots, CustomSlot{
			StartTime: cs.StartTime,
			EndTime:   cs.EndTime,
			Capacity:  cs.Capacity,
		})
	}
	return &ExceptionResponse{
		ID:          d.ID,
		Date:        d.Date,
		Kind:        string(d.Kind),
		CustomSlots: slots,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
	}
}

// CreateAbsenceRequest запрос на создание административного отсутствия
type CreateAbsenceRequest struct {
	Kind               domain.AbsenceKind
	StartDate          time.Time
	EndDate            *time.Time // только для date_range
	BlockedSlotNumbers []int      // пусто — блокируются все слоты
}

// ToDomainAbsence конвертирует запрос в доменную модель
func (r *CreateAbsenceRequest) ToDomainAbsence() *domain.AbsenceOverride {
	return &domain.AbsenceOverride{
		Kind:               r.Kind,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		BlockedSlotNumbers: r.BlockedSlotNumbers,
		Active:             true,
	}
}

// AbsenceResponse административное отсутствие
type AbsenceResponse struct {
	ID                 int64
	Kind               string
	StartDate          time.Time
	EndDate            *time.Time
	BlockedSlotNumbers []int
	Active             bool
	CreatedAt          time.Time
}

// FromDomainAbsence конвертирует доменную модель в ответ
func FromDomainAbsence(d *domain.AbsenceOverride) *AbsenceResponse {
	return &AbsenceResponse{
		ID:                 d.ID,
		Kind:               string(d.Kind),
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		BlockedSlotNumbers: d.BlockedSlotNumbers,
		Active:             d.Active,
		CreatedAt:          d.CreatedAt,
	}
}
