package checkout

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrItemNotFound возвращается, когда позиция меню не найдена
	ErrItemNotFound = errors.New("checkout: menu item not found")

	// ErrItemUnavailable возвращается, когда позиция меню снята с продажи
	ErrItemUnavailable = errors.New("checkout: menu item is unavailable")

	// ErrItemNotBookable возвращается, когда для обычного блюда указан слот
	ErrItemNotBookable = errors.New("checkout: menu item is not bookable")

	// ErrUnknownSlot возвращается, когда слот не принадлежит экрану
	ErrUnknownSlot = errors.New("checkout: slot does not belong to this screen")

	// ErrSlotConflict возвращается, когда хотя бы один запрошенный слот занят
	// Заказ не создается целиком
	ErrSlotConflict = errors.New("checkout: requested slot is already booked")

	// ErrPaymentFailed возвращается, когда шлюз отклонил оплату
	ErrPaymentFailed = errors.New("checkout: payment failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)

// SlotConflictError несет позицию, слот и границы занятого интервала,
// чтобы клиент видел, чем именно занят слот
// Сопоставляется с ErrSlotConflict через errors.Is
type SlotConflictError struct {
	ItemName string
	SlotID   string
	Start    time.Time
	End      time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%v: item %q slot %s is busy from %s to %s",
		ErrSlotConflict, e.ItemName, e.SlotID,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}
