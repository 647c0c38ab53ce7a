package check_availability

import "errors"

var (
	// ErrItemNotFound возвращается, когда позиция меню не найдена
	ErrItemNotFound = errors.New("check_availability: menu item not found")

	// ErrItemNotBookable возвращается, когда позиция не является бронируемым экраном
	ErrItemNotBookable = errors.New("check_availability: menu item is not bookable")

	// ErrUnknownSlot возвращается, когда слот не принадлежит экрану
	ErrUnknownSlot = errors.New("check_availability: slot does not belong to this screen")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
