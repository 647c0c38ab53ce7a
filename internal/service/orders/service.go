package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/internal/infra/events"
	orderRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/order"
	profileRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/profile"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo   OrderRepository
	profileRepo ProfileRepository
	// publisher допускает nil, если события выключены в конфигурации
	publisher    EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	profileRepo ProfileRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		profileRepo:  profileRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заказ по ID
// Студент видит только собственные заказы, владелец и админ - любые
func (s *Service) GetByID(ctx context.Context, id, actorID uuid.UUID, role domain.Role) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%s for actor=%s", id, actorID)

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleStudent && order.StudentID != actorID {
		s.logger.Warn("GetByID: access denied for student=%s to order id=%s", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// GetStudentOrders получает историю заказов студента
func (s *Service) GetStudentOrders(ctx context.Context, studentID uuid.UUID) (*models.OrderListResponse, error) {
	s.logger.Info("GetStudentOrders: fetching orders for student=%s", studentID)

	orders, err := s.orderRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		s.logger.Error("GetStudentOrders: repository error for student=%s: %v", studentID, err)
		return nil, fmt.Errorf("%w: GetStudentOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentOrders: fetched %d orders for student=%s", len(orders), studentID)
	return models.FromDomainOrderList(orders), nil
}

// GetCanteenOrders получает ленту заказов столовой с фильтрацией
func (s *Service) GetCanteenOrders(ctx context.Context, req *models.GetCanteenOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetCanteenOrders: fetching canteen feed")

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCanteenOrders: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCanteenOrders: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCanteenOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCanteenOrders: fetched %d orders", len(orders))
	return models.FromDomainOrderList(orders), nil
}

// UpdateStatus переводит заказ в новый статус
// Допустимы только переходы вперед по жизненному циклу;
// отмена возможна из любого нетерминального статуса
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: order id=%s -> status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%s", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	if !order.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for order id=%s",
			order.Status, newStatus, id)
		if order.Status.IsTerminal() {
			return ErrOrderTerminal
		}
		return ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: repository error for order id=%s: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: order id=%s moved %s -> %s", id, order.Status, newStatus)
	s.publishStatusChanged(ctx, id, order.Status, newStatus)

	return nil
}

// Cancel отменяет заказ
// Студент может отменить только собственный заказ в нетерминальном статусе
func (s *Service) Cancel(ctx context.Context, id, actorID uuid.UUID, role domain.Role) error {
	s.logger.Info("Cancel: cancelling order id=%s by actor=%s", id, actorID)

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	if role == domain.RoleStudent && order.StudentID != actorID {
		s.logger.Warn("Cancel: access denied for student=%s to order id=%s", actorID, id)
		return ErrAccessDenied
	}

	if !order.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: order id=%s in terminal status %s", id, order.Status)
		return ErrOrderTerminal
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("Cancel: repository error for order id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled order id=%s, slots released", id)
	s.publishStatusChanged(ctx, id, order.Status, domain.StatusCancelled)

	return nil
}

// Collect выдает заказ по QR токену
// Пустой список позиций означает выдачу всего заказа; частичная выдача
// переводит заказ в partially_collected, полная - в collected
func (s *Service) Collect(ctx context.Context, staffID uuid.UUID, req *models.CollectRequest) (*models.OrderResponse, error) {
	s.logger.Info("Collect: staff=%s scanning qr=%s", staffID, req.QRToken)

	if req.QRToken == "" {
		return nil, fmt.Errorf("%w: qrToken is required", ErrInvalidInput)
	}

	staff, err := s.profileRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Collect: staff profile id=%s not found", staffID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("Collect: failed to get staff profile id=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
	}

	if !staff.CanCollectOrders() {
		s.logger.Warn("Collect: staff id=%s cannot collect orders", staffID)
		return nil, ErrCollectorNotAllowed
	}

	var result *domain.Order
	var prevStatus domain.OrderStatus
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.GetByQRToken(txCtx, req.QRToken)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				s.logger.Warn("Collect: qr=%s not found", req.QRToken)
				return ErrOrderNotFound
			}
			s.logger.Error("Collect: repository error for qr=%s: %v", req.QRToken, err)
			return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
		}

		if order.Status.IsTerminal() {
			s.logger.Warn("Collect: order id=%s already in terminal status %s", order.ID, order.Status)
			return ErrOrderTerminal
		}
		prevStatus = order.Status

		itemIDs := req.ItemIDs
		if len(itemIDs) == 0 {
			itemIDs = make([]uuid.UUID, 0, len(order.Items))
			for _, item := range order.Items {
				if !item.IsDelivered {
					itemIDs = append(itemIDs, item.ID)
				}
			}
		}

		if err := s.orderRepo.MarkItemsDelivered(txCtx, order.ID, itemIDs); err != nil {
			if errors.Is(err, orderRepo.ErrItemNotFound) {
				return fmt.Errorf("%w: unknown order items", ErrInvalidInput)
			}
			s.logger.Error("Collect: failed to mark items delivered for order id=%s: %v", order.ID, err)
			return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
		}

		undelivered, err := s.orderRepo.CountUndelivered(txCtx, order.ID)
		if err != nil {
			s.logger.Error("Collect: failed to count undelivered for order id=%s: %v", order.ID, err)
			return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
		}

		// Выдача всех позиций автоматически закрывает заказ
		if undelivered == 0 {
			if err := s.orderRepo.SetCollected(txCtx, order.ID, staffID, s.timeProvider.Now()); err != nil {
				s.logger.Error("Collect: failed to set collected for order id=%s: %v", order.ID, err)
				return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
			}
		} else {
			if err := s.orderRepo.UpdateStatus(txCtx, order.ID, domain.StatusPartiallyCollected); err != nil {
				s.logger.Error("Collect: failed to update status for order id=%s: %v", order.ID, err)
				return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
			}
		}

		updated, err := s.orderRepo.GetByID(txCtx, order.ID)
		if err != nil {
			s.logger.Error("Collect: failed to re-read order id=%s: %v", order.ID, err)
			return fmt.Errorf("%w: Collect - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Collect: order id=%s is now %s", result.ID, result.Status)

	if result.Status == domain.StatusCollected {
		s.publishCollected(ctx, result, staffID)
	} else {
		s.publishStatusChanged(ctx, result.ID, prevStatus, result.Status)
	}

	return models.FromDomainOrder(result), nil
}

// Вспомогательные методы

func (s *Service) getOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("getOrder: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("getOrder: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getOrder - repository error: %v", ErrInternal, err)
	}
	return order, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishJSON(ctx, events.KeyOrderStatus, map[string]any{
		"order_id": orderID,
		"from":     from,
		"to":       to,
	})
	if err != nil {
		s.logger.Warn("publishStatusChanged: failed for order id=%s: %v", orderID, err)
	}
}

func (s *Service) publishCollected(ctx context.Context, order *domain.Order, staffID uuid.UUID) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishJSON(ctx, events.KeyOrderCollected, map[string]any{
		"order_id":     order.ID,
		"student_id":   order.StudentID,
		"collected_by": staffID,
		"collected_at": order.CollectedAt,
	})
	if err != nil {
		s.logger.Warn("publishCollected: failed for order id=%s: %v", order.ID, err)
	}
}
