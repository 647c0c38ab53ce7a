package profile

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

var profileColumns = []string{
	"id",
	"username",
	"role",
	"phone",
	"email",
	"canteen_name",
	"approval_status",
	"approval_date",
	"staff_role",
	"loyalty_points",
	"created_at",
}

// Repository репозиторий для работы с профилями пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan profile: %v", ErrScanRow, err)
	}

	return profile, nil
}

// GetPendingOwners получает владельцев столовых, ожидающих модерации
func (r *Repository) GetPendingOwners(ctx context.Context) ([]*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{
			"role":            domain.RoleOwner,
			"approval_status": domain.ApprovalPending,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOwners - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingOwners - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPendingOwners - scan row: %v", ErrScanRow, err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPendingOwners - rows error: %v", ErrScanRow, err)
	}

	return profiles, nil
}

// SetApprovalStatus обновляет статус модерации владельца
func (r *Repository) SetApprovalStatus(ctx context.Context, ownerID uuid.UUID, status domain.ApprovalStatus, decidedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("profiles").
		Set("approval_status", status).
		Set("approval_date", decidedAt).
		Where(squirrel.Eq{"id": ownerID, "role": domain.RoleOwner}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetApprovalStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetApprovalStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetApprovalStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var approvalStatus sql.NullString
	var approvalDate sql.NullTime
	var staffRole sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.Username,
		&profile.Role,
		&profile.Phone,
		&profile.Email,
		&profile.CanteenName,
		&approvalStatus,
		&approvalDate,
		&staffRole,
		&profile.LoyaltyPoints,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if approvalStatus.Valid {
		s := domain.ApprovalStatus(approvalStatus.String)
		profile.ApprovalStatus = &s
	}
	if approvalDate.Valid {
		t := approvalDate.Time
		profile.ApprovalDate = &t
	}
	if staffRole.Valid {
		s := domain.StaffRole(staffRole.String)
		profile.StaffRole = &s
	}
	profile.CreatedAt = createdAt.Time

	return &profile, nil
}
