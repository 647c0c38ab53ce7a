package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/pkg/dbmetrics"
	"github.com/m04kA/SC-CanteenService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"student_id",
	"student_name",
	"customer_phone",
	"seat_number",
	"total_amount",
	"status",
	"qr_token",
	"coupon_code",
	"discount_amount",
	"collected_by_staff_id",
	"collected_at",
	"created_at",
	"updated_at",
}

var orderItemColumns = []string{
	"id",
	"order_id",
	"menu_item_id",
	"name",
	"quantity",
	"price",
	"notes",
	"category",
	"selected_slot_id",
	"selected_start_time",
	"duration_minutes",
	"seat_type",
	"is_delivered",
	"delivered_quantity",
}

// Repository репозиторий для работы с заказами и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе со всеми его позициями
// Ожидается вызов внутри транзакции, чтобы заголовок и позиции записались атомарно
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"student_id",
			"student_name",
			"customer_phone",
			"seat_number",
			"total_amount",
			"status",
			"qr_token",
			"coupon_code",
			"discount_amount",
		).
		Values(
			order.ID,
			order.StudentID,
			order.StudentName,
			order.CustomerPhone,
			order.SeatNumber,
			order.TotalAmount,
			order.Status,
			order.QRToken,
			order.CouponCode,
			order.DiscountAmount,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	if len(order.Items) > 0 {
		if err := r.createItems(ctx, executor, order.ID, order.Items); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (r *Repository) createItems(ctx context.Context, executor DBExecutor, orderID uuid.UUID, items []*domain.OrderItem) error {
	builder := psqlbuilder.Insert("order_items").
		Columns(
			"id",
			"order_id",
			"menu_item_id",
			"name",
			"quantity",
			"price",
			"notes",
			"category",
			"selected_slot_id",
			"selected_start_time",
			"duration_minutes",
			"seat_type",
		)

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = orderID

		builder = builder.Values(
			item.ID,
			item.OrderID,
			item.MenuItemID,
			item.Name,
			item.Quantity,
			item.Price,
			item.Notes,
			item.Category,
			item.SelectedSlotID,
			item.SelectedStartTime,
			item.DurationMinutes,
			item.SeatType,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build items insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute items insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает заказ по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByQRToken получает заказ по QR токену вместе с позициями
func (r *Repository) GetByQRToken(ctx context.Context, token string) (*domain.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"qr_token": token})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan order: %v", ErrScanRow, err)
	}

	items, err := r.getItems(ctx, executor, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetByStudentID получает заказы студента, от новых к старым
func (r *Repository) GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*domain.Order, error) {
	builder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC")

	return r.getMany(ctx, builder)
}

// GetWithFilter получает ленту заказов столовой по фильтру
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.CanteenOrdersFilter) ([]*domain.Order, error) {
	builder := psqlbuilder.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.Lt{"created_at": *filter.EndDate})
	}

	return r.getMany(ctx, builder)
}

func (r *Repository) getMany(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getMany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	byID := make(map[uuid.UUID]*domain.Order)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: getMany - scan order: %v", ErrScanRow, err)
		}
		order.Items = make([]*domain.OrderItem, 0)
		orders = append(orders, order)
		byID[order.ID] = order
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMany - rows error: %v", ErrScanRow, err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	itemsQuery, itemsArgs, err := psqlbuilder.Select(orderItemColumns...).
		From("order_items").
		Where(squirrel.Eq{"order_id": orderIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getMany - build items query: %v", ErrBuildQuery, err)
	}

	itemRows, err := executor.QueryContext(ctx, itemsQuery, itemsArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMany - execute items query: %v", ErrExecQuery, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanOrderItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("%w: getMany - scan item: %v", ErrScanRow, err)
		}
		if parent, ok := byID[item.OrderID]; ok {
			parent.Items = append(parent.Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMany - item rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

func (r *Repository) getItems(ctx context.Context, executor DBExecutor, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query, args, err := psqlbuilder.Select(orderItemColumns...).
		From("order_items").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// GetBookingsForSlot получает занятые интервалы экрана для указанного слота
// Интервалы удерживают все заказы кроме отмененных
// Внутри транзакции строки заказов блокируются через FOR UPDATE
func (r *Repository) GetBookingsForSlot(ctx context.Context, menuItemID uuid.UUID, slotID string) ([]*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"oi.id",
		"oi.order_id",
		"oi.menu_item_id",
		"oi.name",
		"oi.quantity",
		"oi.price",
		"oi.notes",
		"oi.category",
		"oi.selected_slot_id",
		"oi.selected_start_time",
		"oi.duration_minutes",
		"oi.seat_type",
		"oi.is_delivered",
		"oi.delivered_quantity",
	).
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Where(squirrel.Eq{"oi.menu_item_id": menuItemID}).
		Where(squirrel.Eq{"oi.selected_slot_id": slotID}).
		Where(squirrel.NotEq{"o.status": domain.StatusCancelled}).
		Where("oi.selected_start_time IS NOT NULL")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF oi")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingsForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingsForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.OrderItem, 0)
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBookingsForSlot - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookingsForSlot - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// MarkItemsDelivered отмечает позиции заказа как выданные
func (r *Repository) MarkItemsDelivered(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("order_items").
		Set("is_delivered", true).
		Set("delivered_quantity", squirrel.Expr("quantity")).
		Where(squirrel.Eq{"order_id": orderID, "id": itemIDs}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkItemsDelivered - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkItemsDelivered - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkItemsDelivered - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// CountUndelivered считает невыданные позиции заказа
func (r *Repository) CountUndelivered(ctx context.Context, orderID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("order_items").
		Where(squirrel.Eq{"order_id": orderID, "is_delivered": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountUndelivered - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUndelivered - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// SetCollected фиксирует факт полной выдачи заказа
func (r *Repository) SetCollected(ctx context.Context, orderID, staffID uuid.UUID, collectedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		Set("status", domain.StatusCollected).
		Set("collected_by_staff_id", staffID).
		Set("collected_at", collectedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCollected - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCollected - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCollected - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// InsertPayment сохраняет запись о платеже заказа
func (r *Repository) InsertPayment(ctx context.Context, payment *domain.PaymentRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "order_id", "charge_id", "amount", "currency", "status").
		Values(payment.ID, payment.OrderID, payment.ChargeID, payment.Amount, payment.Currency, payment.Status).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertPayment - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: InsertPayment - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var collectedBy uuid.NullUUID
	var collectedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.StudentID,
		&order.StudentName,
		&order.CustomerPhone,
		&order.SeatNumber,
		&order.TotalAmount,
		&order.Status,
		&order.QRToken,
		&order.CouponCode,
		&order.DiscountAmount,
		&collectedBy,
		&collectedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if collectedBy.Valid {
		order.CollectedByStaffID = &collectedBy.UUID
	}
	if collectedAt.Valid {
		t := collectedAt.Time
		order.CollectedAt = &t
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

func scanOrderItem(row rowScanner) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var startTime sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.MenuItemID,
		&item.Name,
		&item.Quantity,
		&item.Price,
		&item.Notes,
		&item.Category,
		&item.SelectedSlotID,
		&startTime,
		&item.DurationMinutes,
		&item.SeatType,
		&item.IsDelivered,
		&item.DeliveredQuantity,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		t := startTime.Time
		item.SelectedStartTime = &t
	}

	return &item, nil
}
