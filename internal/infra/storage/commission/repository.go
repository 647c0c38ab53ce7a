package commission

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

var commissionColumns = []string{
	"id",
	"month",
	"total_income",
	"commission_amount",
	"owner_id",
	"owner_name",
	"created_at",
}

// Repository репозиторий для работы с записями комиссий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комиссий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает все записи комиссий, свежие месяцы первыми
func (r *Repository) List(ctx context.Context) ([]*domain.CommissionRecord, error) {
	builder := psqlbuilder.Select(commissionColumns...).
		From("commissions").
		OrderBy("month DESC, owner_name ASC")

	return r.getMany(ctx, builder)
}

// ListByOwner получает записи комиссий конкретного владельца
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CommissionRecord, error) {
	builder := psqlbuilder.Select(commissionColumns...).
		From("commissions").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("month DESC")

	return r.getMany(ctx, builder)
}

// Upsert записывает комиссию за месяц, перезаписывая существующую запись владельца
func (r *Repository) Upsert(ctx context.Context, record *domain.CommissionRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("commissions").
		Columns("id", "month", "total_income", "commission_amount", "owner_id", "owner_name").
		Values(record.ID, record.Month, record.TotalIncome, record.CommissionAmount, record.OwnerID, record.OwnerName).
		Suffix(`ON CONFLICT (owner_id, month) DO UPDATE SET
			total_income = EXCLUDED.total_income,
			commission_amount = EXCLUDED.commission_amount,
			owner_name = EXCLUDED.owner_name
		RETURNING created_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time

	return nil
}

// IncomeByOwnerForMonth считает доход владельцев за месяц по выданным заказам
// Учитываются только заказы в терминальных статусах выдачи
func (r *Repository) IncomeByOwnerForMonth(ctx context.Context, monthStart, monthEnd time.Time) (map[uuid.UUID]float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"mi.owner_id",
		"SUM(oi.price * oi.quantity) AS income",
	).
		From("order_items oi").
		Join("orders o ON o.id = oi.order_id").
		Join("menu_items mi ON mi.id = oi.menu_item_id").
		Where(squirrel.Eq{"o.status": []domain.OrderStatus{domain.StatusCollected, domain.StatusCompleted}}).
		Where(squirrel.GtOrEq{"o.created_at": monthStart}).
		Where(squirrel.Lt{"o.created_at": monthEnd}).
		GroupBy("mi.owner_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: IncomeByOwnerForMonth - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: IncomeByOwnerForMonth - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	income := make(map[uuid.UUID]float64)
	for rows.Next() {
		var ownerID uuid.UUID
		var total float64
		if err := rows.Scan(&ownerID, &total); err != nil {
			return nil, fmt.Errorf("%w: IncomeByOwnerForMonth - scan row: %v", ErrScanRow, err)
		}
		income[ownerID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: IncomeByOwnerForMonth - rows error: %v", ErrScanRow, err)
	}

	return income, nil
}

func (r *Repository) getMany(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.CommissionRecord, error) {
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

	records := make([]*domain.CommissionRecord, 0)
	for rows.Next() {
		var record domain.CommissionRecord
		var createdAt sql.NullTime
		err := rows.Scan(
			&record.ID,
			&record.Month,
			&record.TotalIncome,
			&record.CommissionAmount,
			&record.OwnerID,
			&record.OwnerName,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getMany - scan row: %v", ErrScanRow, err)
		}
		record.CreatedAt = createdAt.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMany - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
