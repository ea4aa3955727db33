package memberservice

import "errors"

var (
	// ErrMemberNotFound возвращается, когда член клуба не зарегистрирован
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberInactive возвращается для приостановленного членства
	ErrMemberInactive = errors.New("member is inactive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("memberservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("memberservice client: invalid response")
)
