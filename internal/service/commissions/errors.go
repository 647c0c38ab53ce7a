package commissions

import "errors"

var (
	// ErrInvalidMonth возвращается при некорректном формате месяца
	ErrInvalidMonth = errors.New("commissions.service: invalid month format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("commissions.service: internal error")
)
