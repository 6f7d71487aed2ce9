package service

import (
	"context"
	"testing"
	"time"

	"masjidku_portal/internals/cache"
	fundModel "masjidku_portal/internals/features/finance/funds/model"
	"masjidku_portal/internals/features/finance/transactions/model"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type financeFixture struct {
	svc      *FinanceService
	store    *cache.MemoryStore
	active   uuid.UUID
	inactive uuid.UUID
}

func newFinanceFixture(t *testing.T) financeFixture {
	t.Helper()
	db := testdb.Open(t, &fundModel.FundModel{}, &model.FinanceModel{})

	active := fundModel.FundModel{FundName: "Operasional", FundType: fundModel.FundTypeOperasional, FundIsActive: true}
	inactive := fundModel.FundModel{FundName: "Renovasi 2019", FundType: fundModel.FundTypePembangunan}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&inactive).Error)

	store := cache.NewMemoryStore()
	return financeFixture{
		svc:      NewFinanceService(db, store, nil),
		store:    store,
		active:   active.FundID,
		inactive: inactive.FundID,
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedSummaryCache(t *testing.T, store *cache.MemoryStore) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), "finance:summary:2025-03:all", 1, time.Minute, cache.TagFinance))
}

func summaryCached(t *testing.T, store *cache.MemoryStore) bool {
	t.Helper()
	var v int
	hit, err := store.Get(context.Background(), "finance:summary:2025-03:all", &v)
	require.NoError(t, err)
	return hit
}

func TestFinanceService_CreateInvalidatesCache(t *testing.T) {
	f := newFinanceFixture(t)
	seedSummaryCache(t, f.store)

	donor := "  Pak Ahmad "
	row, err := f.svc.Create(context.Background(), FinanceInput{
		Type:        model.FinanceIncome,
		Amount:      decimal.NewFromInt(150000),
		FundID:      f.active,
		Date:        time.Date(2025, 3, 10, 22, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
		Description: "Kotak Jumat",
		DonorName:   &donor,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, row.FinanceID)
	assert.Equal(t, "2025-03-10", time.Time(row.FinanceDate).Format("2006-01-02"))
	require.NotNil(t, row.FinanceDonorName)
	assert.Equal(t, "Pak Ahmad", *row.FinanceDonorName)
	assert.False(t, summaryCached(t, f.store))
}

func TestFinanceService_CreateRejects(t *testing.T) {
	f := newFinanceFixture(t)
	ctx := context.Background()
	base := FinanceInput{Type: model.FinanceExpense, Amount: decimal.NewFromInt(1), FundID: f.active, Date: day("2025-03-01")}

	neg := base
	neg.Amount = decimal.NewFromInt(-5)
	_, err := f.svc.Create(ctx, neg)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	badType := base
	badType.Type = "TRANSFER"
	_, err = f.svc.Create(ctx, badType)
	assert.ErrorIs(t, err, ErrInvalidType)

	unknown := base
	unknown.FundID = uuid.New()
	_, err = f.svc.Create(ctx, unknown)
	assert.ErrorIs(t, err, ErrFundUnknown)

	inactive := base
	inactive.FundID = f.inactive
	_, err = f.svc.Create(ctx, inactive)
	assert.ErrorIs(t, err, ErrFundInactive)
}

func TestFinanceService_UpdateAndDelete(t *testing.T) {
	f := newFinanceFixture(t)
	ctx := context.Background()

	row, err := f.svc.Create(ctx, FinanceInput{
		Type: model.FinanceExpense, Amount: decimal.NewFromInt(75000), FundID: f.active, Date: day("2025-03-02"),
	})
	require.NoError(t, err)

	seedSummaryCache(t, f.store)
	updated, err := f.svc.Update(ctx, row.FinanceID, FinanceInput{
		Type: model.FinanceExpense, Amount: decimal.NewFromInt(80000), FundID: f.active, Date: day("2025-03-03"),
		Description: "Listrik",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80000).Equal(updated.FinanceAmount))
	assert.Equal(t, "Listrik", updated.FinanceDescription)
	assert.False(t, summaryCached(t, f.store))

	// pindah ke dana nonaktif ditolak
	_, err = f.svc.Update(ctx, row.FinanceID, FinanceInput{
		Type: model.FinanceExpense, Amount: decimal.NewFromInt(1), FundID: f.inactive, Date: day("2025-03-03"),
	})
	assert.ErrorIs(t, err, ErrFundInactive)

	seedSummaryCache(t, f.store)
	require.NoError(t, f.svc.Delete(ctx, row.FinanceID))
	assert.False(t, summaryCached(t, f.store))

	_, err = f.svc.Get(ctx, row.FinanceID)
	assert.ErrorIs(t, err, ErrFinanceNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, row.FinanceID), ErrFinanceNotFound)
}

func TestFinanceService_ListFilters(t *testing.T) {
	f := newFinanceFixture(t)
	ctx := context.Background()

	for _, in := range []FinanceInput{
		{Type: model.FinanceIncome, Amount: decimal.NewFromInt(1), FundID: f.active, Date: day("2025-02-28"), Description: "Infaq Februari"},
		{Type: model.FinanceIncome, Amount: decimal.NewFromInt(2), FundID: f.active, Date: day("2025-03-01"), Description: "Infaq Jumat"},
		{Type: model.FinanceExpense, Amount: decimal.NewFromInt(3), FundID: f.active, Date: day("2025-03-15"), Description: "Air PDAM"},
		{Type: model.FinanceIncome, Amount: decimal.NewFromInt(4), FundID: f.active, Date: day("2025-03-31"), Description: "Infaq Jumat"},
	} {
		_, err := f.svc.Create(ctx, in)
		require.NoError(t, err)
	}

	march := ListFilter{From: day("2025-03-01"), To: day("2025-03-31")}
	rows, total, err := f.svc.List(ctx, march, helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-31", time.Time(rows[0].FinanceDate).Format("2006-01-02"), "newest first")

	incomeOnly := march
	incomeOnly.Type = model.FinanceIncome
	_, total, err = f.svc.List(ctx, incomeOnly, helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	search := ListFilter{Q: "jumat"}
	_, total, err = f.svc.List(ctx, search, helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	page2, total, err := f.svc.List(ctx, ListFilter{}, helper.Paging{Page: 2, PerPage: 3, Offset: 3, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page2, 1)
}
