package checkout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	menuRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/menu"
	"github.com/m04kA/SC-CanteenService/internal/integrations/payments"
	"github.com/m04kA/SC-CanteenService/pkg/ptr"
)

type fakeMenuRepo struct {
	items map[uuid.UUID]*domain.MenuItem
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, menuRepo.ErrItemNotFound
	}
	return item, nil
}

type fakeOrderRepo struct {
	bookings map[string][]*domain.OrderItem // key: slotID
	created  *domain.Order
	payments []*domain.PaymentRecord
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	f.created = order
	return order, nil
}

func (f *fakeOrderRepo) GetBookingsForSlot(_ context.Context, _ uuid.UUID, slotID string) ([]*domain.OrderItem, error) {
	return f.bookings[slotID], nil
}

func (f *fakeOrderRepo) InsertPayment(_ context.Context, payment *domain.PaymentRecord) error {
	f.payments = append(f.payments, payment)
	return nil
}

type fakePayments struct {
	calls    int
	declined bool
}

func (f *fakePayments) Charge(req payments.ChargeRequest) (*payments.ChargeResult, error) {
	f.calls++
	if f.declined {
		return nil, payments.ErrChargeDeclined
	}
	return &payments.ChargeResult{ChargeID: "chrg_test", Amount: req.Amount, Currency: "inr"}, nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) PublishJSON(_ context.Context, routingKey string, _ any) error {
	f.keys = append(f.keys, routingKey)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testMenu() (*fakeMenuRepo, *domain.MenuItem, *domain.MenuItem) {
	dish := &domain.MenuItem{
		ID:          uuid.New(),
		Name:        "Масала доса",
		Price:       60,
		IsAvailable: true,
		Category:    domain.CategoryFood,
	}
	screen := &domain.MenuItem{
		ID:              uuid.New(),
		Name:            "PS5 Screen",
		Price:           100,
		IsAvailable:     true,
		Category:        domain.CategoryGame,
		SlotIDs:         []string{"Screen 1", "Screen 2"},
		DurationMinutes: 60,
	}
	repo := &fakeMenuRepo{items: map[uuid.UUID]*domain.MenuItem{
		dish.ID:   dish,
		screen.ID: screen,
	}}
	return repo, dish, screen
}

func TestExecute_MixedOrder(t *testing.T) {
	menu, dish, screen := testMenu()
	orders := &fakeOrderRepo{}
	gateway := &fakePayments{}
	publisher := &fakePublisher{}
	uc := NewUseCase(menu, orders, gateway, publisher, fakeTxManager{}, nopLogger{})

	start := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		CardToken:   "tok_test",
		CouponCode:  ptr.Ptr("WELCOME10"),
		Items: []ItemRequest{
			{MenuItemID: dish.ID, Quantity: 2},
			{MenuItemID: screen.ID, Quantity: 1, SlotID: ptr.Ptr("Screen 1"), StartTime: &start},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 220.0, resp.TotalAmount)
	assert.True(t, strings.HasPrefix(resp.QRToken, domain.QRTokenPrefix+"-"))
	assert.Len(t, resp.Items, 2)

	// Цены и имена денормализованы из меню
	require.NotNil(t, orders.created)
	assert.Equal(t, "Масала доса", orders.created.Items[0].Name)
	assert.Equal(t, 60.0, orders.created.Items[0].Price)

	// Строка бронирования получила длительность экрана по умолчанию
	assert.Equal(t, 60, orders.created.Items[1].DurationMinutes)

	// Купон сохраняется как есть, скидок в сумме нет
	require.NotNil(t, orders.created.CouponCode)
	assert.Equal(t, "WELCOME10", *orders.created.CouponCode)
	assert.Equal(t, 0.0, orders.created.DiscountAmount)

	// Оплата списана и записана
	assert.Equal(t, 1, gateway.calls)
	require.Len(t, orders.payments, 1)
	assert.Equal(t, orders.created.ID, orders.payments[0].OrderID)

	assert.Equal(t, []string{"order.created"}, publisher.keys)
}

func TestExecute_SlotConflictRejectsWholeOrder(t *testing.T) {
	menu, dish, screen := testMenu()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {{
			Category:          domain.CategoryGame,
			SelectedSlotID:    ptr.Ptr("Screen 1"),
			SelectedStartTime: &busyStart,
			DurationMinutes:   60,
		}},
	}}
	gateway := &fakePayments{}
	uc := NewUseCase(menu, orders, gateway, nil, fakeTxManager{}, nopLogger{})

	start := busyStart.Add(30 * time.Minute)
	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		CardToken:   "tok_test",
		Items: []ItemRequest{
			{MenuItemID: dish.ID, Quantity: 1},
			{MenuItemID: screen.ID, Quantity: 1, SlotID: ptr.Ptr("Screen 1"), StartTime: &start},
		},
	})

	assert.ErrorIs(t, err, ErrSlotConflict)

	// Ошибка несет позицию, слот и границы занятого интервала
	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "PS5 Screen", conflict.ItemName)
	assert.Equal(t, "Screen 1", conflict.SlotID)
	assert.Equal(t, busyStart, conflict.Start)
	assert.Equal(t, busyStart.Add(time.Hour), conflict.End)

	// Заказ не создан и оплата не списывалась
	assert.Nil(t, orders.created)
	assert.Equal(t, 0, gateway.calls)
}

func TestExecute_TouchingSlotAccepted(t *testing.T) {
	menu, _, screen := testMenu()
	busyStart := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	orders := &fakeOrderRepo{bookings: map[string][]*domain.OrderItem{
		"Screen 1": {{
			Category:          domain.CategoryGame,
			SelectedSlotID:    ptr.Ptr("Screen 1"),
			SelectedStartTime: &busyStart,
			DurationMinutes:   60,
		}},
	}}
	uc := NewUseCase(menu, orders, nil, nil, fakeTxManager{}, nopLogger{})

	start := busyStart.Add(time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		Items: []ItemRequest{
			{MenuItemID: screen.ID, Quantity: 1, SlotID: ptr.Ptr("Screen 1"), StartTime: &start},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_PaymentDeclined(t *testing.T) {
	menu, dish, _ := testMenu()
	orders := &fakeOrderRepo{}
	gateway := &fakePayments{declined: true}
	uc := NewUseCase(menu, orders, gateway, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		CardToken:   "tok_test",
		Items:       []ItemRequest{{MenuItemID: dish.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Nil(t, orders.created)
}

func TestExecute_PayAtCounterSkipsGateway(t *testing.T) {
	menu, dish, _ := testMenu()
	orders := &fakeOrderRepo{}
	gateway := &fakePayments{}
	uc := NewUseCase(menu, orders, gateway, nil, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		Items:       []ItemRequest{{MenuItemID: dish.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, gateway.calls)
	assert.Empty(t, orders.payments)
	assert.Equal(t, 60.0, resp.TotalAmount)
}

func TestExecute_UnavailableItem(t *testing.T) {
	menu, dish, _ := testMenu()
	dish.IsAvailable = false
	uc := NewUseCase(menu, &fakeOrderRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		Items:       []ItemRequest{{MenuItemID: dish.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestExecute_SlotOnFoodItemRejected(t *testing.T) {
	menu, dish, _ := testMenu()
	uc := NewUseCase(menu, &fakeOrderRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	start := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		Items: []ItemRequest{
			{MenuItemID: dish.ID, Quantity: 1, SlotID: ptr.Ptr("Screen 1"), StartTime: &start},
		},
	})

	assert.ErrorIs(t, err, ErrItemNotBookable)
}

func TestExecute_OverlongFieldsRejected(t *testing.T) {
	menu, dish, screen := testMenu()
	uc := NewUseCase(menu, &fakeOrderRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	longSeat := strings.Repeat("A", domain.MaxSeatNumberLength+1)
	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		SeatNumber:  &longSeat,
		Items:       []ItemRequest{{MenuItemID: dish.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	longSlot := strings.Repeat("s", domain.MaxSlotIDLength+1)
	_, err = uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
		Items: []ItemRequest{
			{MenuItemID: screen.ID, Quantity: 1, SlotID: &longSlot, StartTime: &start},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EmptyOrderRejected(t *testing.T) {
	menu, _, _ := testMenu()
	uc := NewUseCase(menu, &fakeOrderRepo{}, nil, nil, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		StudentID:   uuid.New(),
		StudentName: "Priya",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
