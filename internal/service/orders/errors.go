package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders.service: order not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("orders.service: invalid status transition")

	// ErrOrderTerminal возвращается при попытке изменить заказ в терминальном статусе
	ErrOrderTerminal = errors.New("orders.service: order is in a terminal status")

	// ErrAccessDenied возвращается при отсутствии прав на заказ
	ErrAccessDenied = errors.New("orders.service: access denied")

	// ErrCollectorNotAllowed возвращается, когда сотрудник не может выдавать заказы
	ErrCollectorNotAllowed = errors.New("orders.service: staff member cannot collect orders")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("orders.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders.service: internal error")
)
