package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/infra/events"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	"github.com/m04kA/SC-CanteenService/internal/integrations/payments"
)

// UseCase use case оформления заказа
// Бронирования экранов принимаются по принципу "все или ничего":
// конфликт любого слота отклоняет заказ целиком до списания оплаты
type UseCase struct {
	menuRepo     MenuRepository
	orderRepo    OrderRepository
	paymentsCli  PaymentsClient
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// paymentsCli и publisher допускают nil, если интеграция выключена в конфигурации
func NewUseCase(
	menuRepo MenuRepository,
	orderRepo OrderRepository,
	paymentsCli PaymentsClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		menuRepo:     menuRepo,
		orderRepo:    orderRepo,
		paymentsCli:  paymentsCli,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления заказа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: student=%s, items=%d", req.StudentID, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Собираем строки заказа из меню
	order, err := uc.materializeOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	order.QRToken = generateQRToken(now)

	// 3. Предварительная проверка всех бронируемых слотов
	// Конфликт здесь отклоняет заказ до обращения к платежному шлюзу
	if err := uc.checkBookings(ctx, order); err != nil {
		return nil, err
	}

	// 4. Списываем оплату, если передан токен карты
	// TODO: авто-возврат charge при конфликте слота внутри транзакции ниже
	var payment *domain.PaymentRecord
	if uc.paymentsCli != nil && req.CardToken != "" && order.TotalAmount > 0 {
		charged, err := uc.paymentsCli.Charge(payments.ChargeRequest{
			OrderRef:  order.QRToken,
			Amount:    order.TotalAmount,
			CardToken: req.CardToken,
		})
		if err != nil {
			if errors.Is(err, payments.ErrChargeDeclined) {
				uc.logger.Warn("Checkout: charge declined for student=%s: %v", req.StudentID, err)
				return nil, ErrPaymentFailed
			}
			uc.logger.Error("Checkout: payment gateway error for student=%s: %v", req.StudentID, err)
			return nil, fmt.Errorf("%w: payment gateway: %v", ErrInternal, err)
		}
		payment = &domain.PaymentRecord{
			ChargeID: charged.ChargeID,
			Amount:   charged.Amount,
			Currency: charged.Currency,
			Status:   domain.PaymentSuccessful,
		}
	}

	// 5. Создаем заказ в сериализуемой транзакции
	// Слоты перепроверяются под блокировкой FOR UPDATE, чтобы закрыть
	// гонку между предварительной проверкой и вставкой
	var result *domain.Order
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkBookings(txCtx, order); err != nil {
			return err
		}

		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			uc.logger.Error("Checkout: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		if payment != nil {
			payment.OrderID = created.ID
			if err := uc.orderRepo.InsertPayment(txCtx, payment); err != nil {
				uc.logger.Error("Checkout: failed to insert payment: %v", err)
				return fmt.Errorf("%w: failed to insert payment: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Checkout: created order id=%s qr=%s total=%.2f", result.ID, result.QRToken, result.TotalAmount)

	// 6. Публикуем событие о создании заказа
	uc.publishCreated(ctx, result)

	return toResponse(result), nil
}

// materializeOrder строит заголовок и строки заказа из текущего меню
// Имена и цены денормализуются на момент оформления
func (uc *UseCase) materializeOrder(ctx context.Context, req *Request) (*domain.Order, error) {
	order := &domain.Order{
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		CustomerPhone: req.CustomerPhone,
		SeatNumber:    req.SeatNumber,
		CouponCode:    req.CouponCode,
		Status:        domain.StatusPending,
		Items:         make([]*domain.OrderItem, 0, len(req.Items)),
	}

	for i := range req.Items {
		line := &req.Items[i]

		item, err := uc.menuRepo.GetByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, menuRepo.ErrItemNotFound) {
				uc.logger.Warn("Checkout: item id=%s not found", line.MenuItemID)
				return nil, fmt.Errorf("%w: item %s", ErrItemNotFound, line.MenuItemID)
			}
			uc.logger.Error("Checkout: failed to get item id=%s: %v", line.MenuItemID, err)
			return nil, fmt.Errorf("%w: failed to get menu item: %v", ErrInternal, err)
		}

		if !item.IsAvailable {
			uc.logger.Warn("Checkout: item id=%s is unavailable", item.ID)
			return nil, fmt.Errorf("%w: item %s", ErrItemUnavailable, item.ID)
		}

		if err := validateBookingLine(item, line); err != nil {
			uc.logger.Warn("Checkout: booking line rejected: %v", err)
			return nil, err
		}

		duration := line.DurationMinutes
		if duration == 0 && line.SlotID != nil {
			duration = item.BookingDuration()
		}

		order.Items = append(order.Items, &domain.OrderItem{
			MenuItemID:        item.ID,
			Name:              item.Name,
			Quantity:          line.Quantity,
			Price:             item.Price,
			Notes:             line.Notes,
			Category:          item.Category,
			SelectedSlotID:    line.SlotID,
			SelectedStartTime: line.StartTime,
			DurationMinutes:   duration,
			SeatType:          line.SeatType,
		})

		order.TotalAmount += item.Price * float64(line.Quantity)
	}

	return order, nil
}

// checkBookings проверяет доступность всех бронируемых строк заказа
func (uc *UseCase) checkBookings(ctx context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		interval, ok := item.Interval()
		if !ok {
			continue
		}

		bookings, err := uc.orderRepo.GetBookingsForSlot(ctx, item.MenuItemID, *item.SelectedSlotID)
		if err != nil {
			uc.logger.Error("Checkout: failed to get bookings for item=%s slot=%s: %v",
				item.MenuItemID, *item.SelectedSlotID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if conflict := findConflict(interval, bookings); conflict != nil {
			uc.logger.Warn("Checkout: slot conflict item=%s slot=%s busy=[%s, %s)",
				item.MenuItemID, *item.SelectedSlotID,
				conflict.Start.Format(time.RFC3339), conflict.End.Format(time.RFC3339))
			return &SlotConflictError{
				ItemName: item.Name,
				SlotID:   *item.SelectedSlotID,
				Start:    conflict.Start,
				End:      conflict.End,
			}
		}
	}

	return nil
}

func (uc *UseCase) publishCreated(ctx context.Context, order *domain.Order) {
	if uc.publisher == nil {
		return
	}

	err := uc.publisher.PublishJSON(ctx, events.KeyOrderCreated, map[string]any{
		"order_id":     order.ID,
		"student_id":   order.StudentID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
	})
	if err != nil {
		// Событие вторично по отношению к заказу, не роняем оформление
		uc.logger.Warn("Checkout: failed to publish order.created for id=%s: %v", order.ID, err)
	}
}

// generateQRToken генерирует уникальный токен выдачи заказа
func generateQRToken(now time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", domain.QRTokenPrefix, now.UnixMilli(), suffix)
}

func toResponse(order *domain.Order) *Response {
	resp := &Response{
		ID:          order.ID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		QRToken:     order.QRToken,
		Items:       make([]ResponseItem, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, ResponseItem{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			SlotID:     item.SelectedSlotID,
			StartTime:  item.SelectedStartTime,
		})
	}

	return resp
}
