package commissions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SC-CanteenService/internal/domain"
	profileRepo "github.com/m04kA/SC-CanteenService/internal/infra/storage/profile"
	"github.com/m04kA/SC-CanteenService/internal/service/commissions/models"
	"github.com/m04kA/SC-CanteenService/pkg/ptr"
)

type fakeCommissionRepo struct {
	income  map[uuid.UUID]float64
	records map[string]*domain.CommissionRecord // owner_id+month

	gotMonthStart time.Time
	gotMonthEnd   time.Time
}

func newFakeCommissionRepo(income map[uuid.UUID]float64) *fakeCommissionRepo {
	return &fakeCommissionRepo{
		income:  income,
		records: make(map[string]*domain.CommissionRecord),
	}
}

func (f *fakeCommissionRepo) List(_ context.Context) ([]*domain.CommissionRecord, error) {
	out := make([]*domain.CommissionRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeCommissionRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*domain.CommissionRecord, error) {
	out := make([]*domain.CommissionRecord, 0)
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) Upsert(_ context.Context, record *domain.CommissionRecord) error {
	f.records[record.OwnerID.String()+record.Month] = record
	return nil
}

func (f *fakeCommissionRepo) IncomeByOwnerForMonth(_ context.Context, monthStart, monthEnd time.Time) (map[uuid.UUID]float64, error) {
	f.gotMonthStart = monthStart
	f.gotMonthEnd = monthEnd
	return f.income, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGenerateForMonth(t *testing.T) {
	ownerA := uuid.New()
	ownerB := uuid.New()

	commissionRepo := newFakeCommissionRepo(map[uuid.UUID]float64{
		ownerA: 10000,
		ownerB: 4000,
	})
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		ownerA: {ID: ownerA, Username: "ramesh", Role: domain.RoleOwner, CanteenName: ptr.Ptr("Южная столовая")},
		ownerB: {ID: ownerB, Username: "suresh", Role: domain.RoleOwner},
	}}

	svc := NewService(commissionRepo, profiles, 0.05, nopLogger{})

	result, err := svc.GenerateForMonth(context.Background(), &models.GenerateRequest{Month: "2025-09"})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	byOwner := make(map[uuid.UUID]models.CommissionResponse)
	for _, r := range result.Records {
		byOwner[r.OwnerID] = r
	}

	assert.Equal(t, 10000.0, byOwner[ownerA].TotalIncome)
	assert.Equal(t, 500.0, byOwner[ownerA].CommissionAmount)
	assert.Equal(t, "Южная столовая", byOwner[ownerA].OwnerName)

	// Без названия столовой используется имя пользователя
	assert.Equal(t, "suresh", byOwner[ownerB].OwnerName)
	assert.Equal(t, 200.0, byOwner[ownerB].CommissionAmount)

	// Границы месяца: [1 сентября, 1 октября)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), commissionRepo.gotMonthStart)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), commissionRepo.gotMonthEnd)
}

func TestGenerateForMonth_Rerun(t *testing.T) {
	ownerID := uuid.New()
	commissionRepo := newFakeCommissionRepo(map[uuid.UUID]float64{ownerID: 1000})
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		ownerID: {ID: ownerID, Username: "ramesh", Role: domain.RoleOwner},
	}}
	svc := NewService(commissionRepo, profiles, 0.05, nopLogger{})

	_, err := svc.GenerateForMonth(context.Background(), &models.GenerateRequest{Month: "2025-09"})
	require.NoError(t, err)

	// Повторный запуск перезаписывает запись месяца, а не дублирует ее
	commissionRepo.income[ownerID] = 2000
	result, err := svc.GenerateForMonth(context.Background(), &models.GenerateRequest{Month: "2025-09"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Len(t, commissionRepo.records, 1)
	assert.Equal(t, 100.0, result.Records[0].CommissionAmount)
}

func TestGenerateForMonth_MissingProfileKept(t *testing.T) {
	ownerID := uuid.New()
	commissionRepo := newFakeCommissionRepo(map[uuid.UUID]float64{ownerID: 3000})
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{}}
	svc := NewService(commissionRepo, profiles, 0.05, nopLogger{})

	result, err := svc.GenerateForMonth(context.Background(), &models.GenerateRequest{Month: "2025-09"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "", result.Records[0].OwnerName)
	assert.Equal(t, 150.0, result.Records[0].CommissionAmount)
}

func TestGenerateForMonth_InvalidMonth(t *testing.T) {
	svc := NewService(newFakeCommissionRepo(nil), &fakeProfileRepo{}, 0.05, nopLogger{})

	_, err := svc.GenerateForMonth(context.Background(), &models.GenerateRequest{Month: "сентябрь"})

	assert.True(t, errors.Is(err, ErrInvalidMonth))
}

func TestNewService_DefaultRate(t *testing.T) {
	svc := NewService(newFakeCommissionRepo(nil), &fakeProfileRepo{}, 0, nopLogger{})
	assert.Equal(t, domain.DefaultCommissionRate, svc.rate)
}
