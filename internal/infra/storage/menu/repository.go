package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	"github.com/m04kA/SC-CanteenService/pkg/dbmetrics"
	"github.com/m04kA/SC-CanteenService/pkg/psqlbuilder"
)

var menuColumns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"price",
	"image_url",
	"is_available",
	"category",
	"dietary_tags",
	"slot_ids",
	"duration_minutes",
	"average_rating",
	"favorite_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с позициями меню и избранным
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую позицию меню
func (r *Repository) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("menu_items").
		Columns(
			"id",
			"owner_id",
			"name",
			"description",
			"price",
			"image_url",
			"is_available",
			"category",
			"dietary_tags",
			"slot_ids",
			"duration_minutes",
		).
		Values(
			item.ID,
			item.OwnerID,
			item.Name,
			item.Description,
			item.Price,
			item.ImageURL,
			item.IsAvailable,
			item.Category,
			pq.Array(tagsToStrings(item.DietaryTags)),
			pq.Array(item.SlotIDs),
			item.DurationMinutes,
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

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// GetByID получает позицию меню по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menu_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanMenuItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan item: %v", ErrScanRow, err)
	}

	return item, nil
}

// List получает все позиции меню, отсортированные по названию
func (r *Repository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menu_items").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// Update обновляет позицию меню
func (r *Repository) Update(ctx context.Context, id uuid.UUID, item *domain.MenuItem) (*domain.MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("menu_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("image_url", item.ImageURL).
		Set("is_available", item.IsAvailable).
		Set("category", item.Category).
		Set("dietary_tags", pq.Array(tagsToStrings(item.DietaryTags))).
		Set("slot_ids", pq.Array(item.SlotIDs)).
		Set("duration_minutes", item.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	item.ID = id
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return item, nil
}

// SetAvailability переключает доступность позиции меню
func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, isAvailable bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("menu_items").
		Set("is_available", isAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete удаляет позицию меню
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("menu_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// GetFavoriteIDs получает ID избранных позиций пользователя
func (r *Repository) GetFavoriteIDs(ctx context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("menu_item_id").
		From("favorites").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFavoriteIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetFavoriteIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	favorites := make(map[uuid.UUID]bool)
	for rows.Next() {
		var itemID uuid.UUID
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("%w: GetFavoriteIDs - scan row: %v", ErrScanRow, err)
		}
		favorites[itemID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetFavoriteIDs - rows error: %v", ErrScanRow, err)
	}

	return favorites, nil
}

// ToggleFavorite добавляет позицию в избранное или убирает ее оттуда
// Возвращает true, если позиция стала избранной
func (r *Repository) ToggleFavorite(ctx context.Context, studentID, itemID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("favorites").
		Where(squirrel.Eq{"student_id": studentID, "menu_item_id": itemID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFavorite - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFavorite - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFavorite - get rows affected: %v", ErrExecQuery, err)
	}

	// Запись была - значит убрали из избранного
	if rowsAffected > 0 {
		return false, nil
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("favorites").
		Columns("student_id", "menu_item_id").
		Values(studentID, itemID).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFavorite - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return false, fmt.Errorf("%w: ToggleFavorite - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	var tags pq.StringArray
	var slots pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageURL,
		&item.IsAvailable,
		&item.Category,
		&tags,
		&slots,
		&item.DurationMinutes,
		&item.AverageRating,
		&item.FavoriteCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.DietaryTags = stringsToTags(tags)
	item.SlotIDs = []string(slots)
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

func tagsToStrings(tags []domain.DietaryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func stringsToTags(values []string) []domain.DietaryTag {
	out := make([]domain.DietaryTag, len(values))
	for i, v := range values {
		out[i] = domain.DietaryTag(v)
	}
	return out
}
