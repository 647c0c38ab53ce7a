package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	orderRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/order"
	profileRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/profile"
	"github.com/m04kA/SC-CanteenService/internal/service/orders/models"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) GetByQRToken(_ context.Context, token string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.QRToken == token {
			return o, nil
		}
	}
	return nil, orderRepo.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetByStudentID(_ context.Context, studentID uuid.UUID) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0)
	for _, o := range f.orders {
		if o.StudentID == studentID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetWithFilter(_ context.Context, filter domain.CanteenOrdersFilter) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0)
	for _, o := range f.orders {
		if !filter.IncludeCancelled && filter.Status == nil && o.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) MarkItemsDelivered(_ context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	o, ok := f.orders[orderID]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	marked := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		marked[id] = true
	}
	for _, item := range o.Items {
		if marked[item.ID] {
			item.IsDelivered = true
			item.DeliveredQuantity = item.Quantity
		}
	}
	return nil
}

func (f *fakeOrderRepo) CountUndelivered(_ context.Context, orderID uuid.UUID) (int, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return 0, orderRepo.ErrOrderNotFound
	}
	count := 0
	for _, item := range o.Items {
		if !item.IsDelivered {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) SetCollected(_ context.Context, orderID, staffID uuid.UUID, collectedAt time.Time) error {
	o, ok := f.orders[orderID]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	o.Status = domain.StatusCollected
	o.CollectedByStaffID = &staffID
	o.CollectedAt = &collectedAt
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingOrder(studentID uuid.UUID) *domain.Order {
	return &domain.Order{
		ID:          uuid.New(),
		StudentID:   studentID,
		StudentName: "Priya",
		Status:      domain.StatusPending,
		QRToken:     "ORD-1728991845123-a1b2c3d4",
		Items: []*domain.OrderItem{
			{ID: uuid.New(), Name: "Масала доса", Quantity: 2, Price: 60, Category: domain.CategoryFood},
			{ID: uuid.New(), Name: "Чай", Quantity: 1, Price: 15, Category: domain.CategoryFood},
		},
	}
}

func counterStaff() (*fakeProfileRepo, uuid.UUID) {
	staffID := uuid.New()
	role := domain.StaffCounter
	return &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		staffID: {ID: staffID, Role: domain.RoleOwner, StaffRole: &role},
	}}, staffID
}

func newService(orders *fakeOrderRepo, profiles *fakeProfileRepo) *Service {
	return NewService(orders, profiles, nil, fakeTxManager{}, nopLogger{})
}

func TestUpdateStatus_ForwardTransition(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateStatusRequest{Status: "prepared"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrepared, order.Status)
}

func TestUpdateStatus_BackwardTransitionRejected(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	order.Status = domain.StatusPrepared
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_TerminalFrozen(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	order.Status = domain.StatusCollected
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrOrderTerminal)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_OwnOrder(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.Cancel(context.Background(), order.ID, student, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	assert.False(t, order.HoldsSlots())
}

func TestCancel_ForeignOrderDenied(t *testing.T) {
	order := pendingOrder(uuid.New())
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	err := svc.Cancel(context.Background(), order.ID, uuid.New(), domain.RoleStudent)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCollect_FullDelivery(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	order.Status = domain.StatusPrepared
	profiles, staffID := counterStaff()
	svc := newService(newFakeOrderRepo(order), profiles)

	resp, err := svc.Collect(context.Background(), staffID, &models.CollectRequest{QRToken: order.QRToken})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCollected), resp.Status)
	require.NotNil(t, resp.CollectedAt)
	assert.Equal(t, staffID, *resp.CollectedByStaffID)
	for _, item := range resp.Items {
		assert.True(t, item.IsDelivered)
		assert.Equal(t, item.Quantity, item.DeliveredQuantity)
	}
}

func TestCollect_PartialThenFull(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	order.Status = domain.StatusPrepared
	profiles, staffID := counterStaff()
	svc := newService(newFakeOrderRepo(order), profiles)

	// Сначала выдаем только первую позицию
	resp, err := svc.Collect(context.Background(), staffID, &models.CollectRequest{
		QRToken: order.QRToken,
		ItemIDs: []uuid.UUID{order.Items[0].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPartiallyCollected), resp.Status)
	assert.Nil(t, resp.CollectedAt)

	// Выдача остатка закрывает заказ
	resp, err = svc.Collect(context.Background(), staffID, &models.CollectRequest{QRToken: order.QRToken})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCollected), resp.Status)
	require.NotNil(t, resp.CollectedAt)
}

func TestCollect_TerminalOrderRejected(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	order.Status = domain.StatusCollected
	profiles, staffID := counterStaff()
	svc := newService(newFakeOrderRepo(order), profiles)

	_, err := svc.Collect(context.Background(), staffID, &models.CollectRequest{QRToken: order.QRToken})
	assert.ErrorIs(t, err, ErrOrderTerminal)
}

func TestCollect_UnknownToken(t *testing.T) {
	profiles, staffID := counterStaff()
	svc := newService(newFakeOrderRepo(), profiles)

	_, err := svc.Collect(context.Background(), staffID, &models.CollectRequest{QRToken: "ORD-0-deadbeef"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCollect_DeliveryStaffDenied(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	staffID := uuid.New()
	role := domain.StaffDelivery
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		staffID: {ID: staffID, Role: domain.RoleOwner, StaffRole: &role},
	}}
	svc := newService(newFakeOrderRepo(order), profiles)

	_, err := svc.Collect(context.Background(), staffID, &models.CollectRequest{QRToken: order.QRToken})
	assert.ErrorIs(t, err, ErrCollectorNotAllowed)
}

func TestGetByID_StudentAccess(t *testing.T) {
	student := uuid.New()
	order := pendingOrder(student)
	svc := newService(newFakeOrderRepo(order), &fakeProfileRepo{})

	resp, err := svc.GetByID(context.Background(), order.ID, student, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)

	_, err = svc.GetByID(context.Background(), order.ID, uuid.New(), domain.RoleStudent)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Владелец столовой видит любой заказ
	_, err = svc.GetByID(context.Background(), order.ID, uuid.New(), domain.RoleOwner)
	assert.NoError(t, err)
}
