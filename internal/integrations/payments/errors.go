package payments

import "errors"

var (
	// ErrChargeDeclined возвращается, когда шлюз отклонил списание
	ErrChargeDeclined = errors.New("payments client: charge declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")
)
