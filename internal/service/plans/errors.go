package plans

import "errors"

var (
	// ErrMemberNotFound возвращается, когда член клуба не зарегистрирован
	ErrMemberNotFound = errors.New("plans.service: member not found")

	// ErrMemberInactive возвращается для приостановленного членства
	ErrMemberInactive = errors.New("plans.service: member is inactive")

	// ErrUnknownSlot возвращается, когда выбранный (weekday, slot) не существует
	// в недельном шаблоне
	ErrUnknownSlot = errors.New("plans.service: slot not in weekly template")

	// ErrPriceNotConfigured возвращается, когда для тарифа не настроена цена
	ErrPriceNotConfigured = errors.New("plans.service: price not configured for plan tier")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("plans.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("plans.service: internal error")
)
