package domain

import "time"

// EngineConfig снимок конфигурации, передаваемый явно в каждый вызов
// резолвера и биллинга. Конфигурация не читается из глобального состояния,
// чтобы вычисление было воспроизводимым при фиксированном снимке.
type EngineConfig struct {
	// DefaultCapacity вместимость слота без собственного override
	// (значение Plan/Pricing-коллаборатора GetGlobalCapacity)
	DefaultCapacity int

	// LateCancelCutoff порог "поздней" отмены до начала занятия
	LateCancelCutoff time.Duration

	// Location таймзона клуба: даты и времена слотов локальны для нее
	Location *time.Location
}

// DefaultEngineConfig снимок с дефолтами, используется когда коллаборатор
// конфигурации недоступен
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultCapacity:  DefaultSlotCapacity,
		LateCancelCutoff: DefaultLateCancelCutoffHours * time.Hour,
		Location:         time.Local,
	}
}
