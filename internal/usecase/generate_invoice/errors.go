package generate_invoice

import "errors"

var (
	// ErrMemberNotFound возвращается, когда член клуба не зарегистрирован
	ErrMemberNotFound = errors.New("generate_invoice: member not found")

	// ErrPriceNotConfigured возвращается, когда для тарифа члена клуба
	// не настроена цена — счет не генерируется молча с нулем
	ErrPriceNotConfigured = errors.New("generate_invoice: price not configured for plan tier")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_invoice: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_invoice: internal error")
)
