package menu

import "errors"

var (
	// ErrItemNotFound возвращается, когда позиция меню не найдена
	ErrItemNotFound = errors.New("menu.service: menu item not found")

	// ErrAccessDenied возвращается при попытке изменить чужую позицию
	ErrAccessDenied = errors.New("menu.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("menu.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("menu.service: internal error")
)
