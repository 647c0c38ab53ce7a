package owners

import "errors"

var (
	// ErrOwnerNotFound возвращается, когда профиль владельца не найден
	ErrOwnerNotFound = errors.New("owners.service: owner not found")

	// ErrNotAnOwner возвращается, когда профиль не является владельцем столовой
	ErrNotAnOwner = errors.New("owners.service: profile is not a canteen owner")

	// ErrAlreadyDecided возвращается, когда заявка владельца уже рассмотрена
	ErrAlreadyDecided = errors.New("owners.service: owner application already decided")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("owners.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("owners.service: internal error")
)
