package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
)

// UseCase use case проверки доступности слота экрана
type UseCase struct {
	menuRepo  MenuRepository
	orderRepo OrderRepository
	// failOpen определяет ответ при недоступности хранилища:
	// true - слот считается свободным, false - занятым
	failOpen bool
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	menuRepo MenuRepository,
	orderRepo OrderRepository,
	failOpen bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		failOpen:  failOpen,
		logger:    logger,
	}
}

// Execute выполняет use case проверки доступности
// Ошибки чтения занятости не пробрасываются наружу: ответ определяется
// политикой failOpen, а деградация помечается флагом Degraded
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: item=%s, slot=%s, start=%s, duration=%d",
		req.ItemID, req.SlotID, req.StartTime.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем экран из меню
	item, err := uc.menuRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrItemNotFound) {
			uc.logger.Warn("CheckAvailability: item id=%s not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get item id=%s: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get menu item: %v", ErrInternal, err)
	}

	// 3. Проверяем, что это экран и слот ему принадлежит
	if err := validateItem(item, req.SlotID); err != nil {
		uc.logger.Warn("CheckAvailability: item id=%s slot=%s rejected: %v", req.ItemID, req.SlotID, err)
		return nil, err
	}

	// 4. Строим запрошенный интервал
	duration := req.DurationMinutes
	if duration == 0 {
		duration = item.BookingDuration()
	}
	requested := domain.NewInterval(req.StartTime, duration)

	// 5. Получаем занятые интервалы слота
	bookings, err := uc.orderRepo.GetBookingsForSlot(ctx, req.ItemID, req.SlotID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for item=%s slot=%s, fail mode applied: %v",
			req.ItemID, req.SlotID, err)
		return &Response{
			IsAvailable: uc.failOpen,
			Degraded:    true,
		}, nil
	}

	// 6. Ищем пересечение
	if conflict := findConflict(requested, bookings); conflict != nil {
		uc.logger.Info("CheckAvailability: item=%s slot=%s busy %s - %s",
			req.ItemID, req.SlotID,
			conflict.Start.Format(time.RFC3339), conflict.End.Format(time.RFC3339))
		return &Response{
			IsAvailable:   false,
			ConflictStart: &conflict.Start,
			ConflictEnd:   &conflict.End,
		}, nil
	}

	uc.logger.Info("CheckAvailability: item=%s slot=%s is free", req.ItemID, req.SlotID)

	return &Response{IsAvailable: true}, nil
}
