package planservice

import "errors"

var (
	// ErrPriceNotFound возвращается, когда для тарифа не настроена цена
	ErrPriceNotFound = errors.New("price not configured for plan tier")

	// ErrCapacityNotFound возвращается, когда глобальная вместимость не настроена
	ErrCapacityNotFound = errors.New("global capacity not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("planservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("planservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// PlanService недоступен, вызывающая сторона использует значение по умолчанию
	ErrServiceDegraded = errors.New("planservice unavailable: graceful degradation applied")
)
