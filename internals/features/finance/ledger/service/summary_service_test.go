package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"masjidku_portal/internals/cache"
	fundModel "masjidku_portal/internals/features/finance/funds/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"
	settingsModel "masjidku_portal/internals/features/settings/site_settings/model"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var jakarta = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		panic(err)
	}
	return loc
}()

type ledgerFixture struct {
	db      *gorm.DB
	svc     *SummaryService
	store   *cache.MemoryStore
	opID    uuid.UUID
	zakatID uuid.UUID
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := testdb.Open(t, &fundModel.FundModel{}, &financeModel.FinanceModel{}, &settingsModel.SiteSettingsModel{})

	op := fundModel.FundModel{FundName: "Operasional", FundType: fundModel.FundTypeOperasional, FundIsActive: true}
	zakat := fundModel.FundModel{FundName: "Zakat", FundType: fundModel.FundTypeZakat, FundIsActive: true, FundIsRestricted: true}
	require.NoError(t, db.Create(&op).Error)
	require.NoError(t, db.Create(&zakat).Error)
	require.NoError(t, db.Create(&settingsModel.SiteSettingsModel{
		ID: settingsModel.SiteSettingsID, SiteName: "Masjid", OpeningBalance: decimal.NewFromInt(100000),
	}).Error)

	store := cache.NewMemoryStore()
	svc := NewSummaryService(db, store, time.Minute, jakarta, nil)
	svc.Now = func() time.Time { return time.Date(2025, 3, 20, 9, 0, 0, 0, jakarta) }

	return &ledgerFixture{db: db, svc: svc, store: store, opID: op.FundID, zakatID: zakat.FundID}
}

func (f *ledgerFixture) addFinance(t *testing.T, fund *uuid.UUID, typ financeModel.FinanceType, amount int64, date string) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&financeModel.FinanceModel{
		FinanceType:   typ,
		FinanceAmount: decimal.NewFromInt(amount),
		FinanceFundID: fund,
		FinanceDate:   financeModel.CalendarDate(d),
	}).Error)
}

func TestSummary_MarchLedger(t *testing.T) {
	f := newLedgerFixture(t)
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 500000, "2025-03-03")
	f.addFinance(t, &f.opID, financeModel.FinanceExpense, 200000, "2025-03-10")
	f.addFinance(t, &f.zakatID, financeModel.FinanceIncome, 1000000, "2025-03-31")

	s, err := f.svc.Summary(context.Background(), SummaryQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, 3, s.Month)

	period := map[string]decimal.Decimal{}
	for _, fb := range s.Period.Funds {
		period[fb.FundName] = fb.Balance
	}
	allTime := map[string]decimal.Decimal{}
	for _, fb := range s.AllTime.Funds {
		allTime[fb.FundName] = fb.Balance
	}

	assert.True(t, decimal.NewFromInt(300000).Equal(period["Operasional"]), "period op %s", period["Operasional"])
	assert.True(t, decimal.NewFromInt(400000).Equal(allTime["Operasional"]), "all-time op %s", allTime["Operasional"])
	assert.True(t, decimal.NewFromInt(1000000).Equal(period["Zakat"]))
	assert.True(t, decimal.NewFromInt(1000000).Equal(allTime["Zakat"]))
	assert.True(t, decimal.NewFromInt(1400000).Equal(s.AllTime.Balance), "flat all-time %s", s.AllTime.Balance)
}

func TestSummary_PeriodBoundaries(t *testing.T) {
	f := newLedgerFixture(t)
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 10, "2025-02-28")
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 20, "2025-03-01")
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 30, "2025-03-31")
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 40, "2025-04-01")

	s, err := f.svc.Summary(context.Background(), SummaryQuery{Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(s.Period.Income), "period income %s", s.Period.Income)
	assert.True(t, decimal.NewFromInt(100).Equal(s.AllTime.Income))
	assert.True(t, decimal.NewFromInt(100100).Equal(s.AllTime.Balance))
}

func TestSummary_UnknownFundRows(t *testing.T) {
	f := newLedgerFixture(t)
	gone := uuid.New()
	f.addFinance(t, &gone, financeModel.FinanceIncome, 70, "2025-03-05")
	f.addFinance(t, nil, financeModel.FinanceExpense, 20, "2025-03-06")

	s, err := f.svc.Summary(context.Background(), SummaryQuery{Year: 2025, Month: 3})
	require.NoError(t, err)

	unknown := 0
	for _, fb := range s.Period.Funds {
		if fb.FundName == "Unknown" {
			unknown++
		}
	}
	assert.Equal(t, 2, unknown)
	assert.True(t, decimal.NewFromInt(50).Equal(s.Period.Balance))
}

func TestSummary_CachedUntilInvalidated(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 1000, "2025-03-05")

	first, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)

	// tulis langsung ke DB tanpa invalidasi -> masih nilai lama
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 500, "2025-03-06")
	cached, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)
	assert.True(t, first.Period.Income.Equal(cached.Period.Income))

	require.NoError(t, f.store.InvalidateTag(ctx, cache.TagFinance))
	fresh, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(fresh.Period.Income))
}

func TestSummary_FundFilterUsesOwnCacheKey(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 1000, "2025-03-05")
	f.addFinance(t, &f.zakatID, financeModel.FinanceIncome, 7000, "2025-03-05")

	all, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)
	zakatOnly, err := f.svc.Summary(ctx, SummaryQuery{FundID: &f.zakatID})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(108000).Equal(all.AllTime.Balance))
	assert.True(t, decimal.NewFromInt(7000).Equal(zakatOnly.AllTime.Balance))
	require.Len(t, zakatOnly.AllTime.Funds, 1)
}

func TestSummary_ReadFailurePropagates(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "funds"`).
		WillReturnRows(sqlmock.NewRows([]string{"fund_id", "fund_name", "fund_type", "fund_is_restricted", "fund_is_active"}))
	mock.ExpectQuery(`SELECT finance_fund_id AS fund_id`).
		WillReturnError(errors.New("connection reset"))

	svc := NewSummaryService(db, nil, time.Minute, jakarta, nil)
	_, err = svc.Summary(context.Background(), SummaryQuery{Year: 2025, Month: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// invalidatingStore mensimulasikan transaksi yang tercatat saat ringkasan sedang dihitung.
type invalidatingStore struct {
	*cache.MemoryStore
	during func()
}

func (s *invalidatingStore) Generation(ctx context.Context, tag string) (int64, error) {
	gen, err := s.MemoryStore.Generation(ctx, tag)
	if s.during != nil {
		s.during()
		s.during = nil
	}
	return gen, err
}

func TestSummary_WriteDuringComputeIsNotCached(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 1000, "2025-03-05")

	store := &invalidatingStore{MemoryStore: f.store}
	store.during = func() {
		require.NoError(t, f.store.InvalidateTag(ctx, cache.TagFinance))
	}
	f.svc.Cache = store

	_, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)

	var cached struct{}
	hit, err := f.store.Get(ctx, summaryCacheKey(2025, 3, nil), &cached)
	require.NoError(t, err)
	assert.False(t, hit, "summary computed across an invalidation must not be cached")

	// tanpa invalidasi: transaksi baru langsung terlihat karena tidak ada nilai basi
	f.addFinance(t, &f.opID, financeModel.FinanceIncome, 500, "2025-03-06")
	fresh, err := f.svc.Summary(ctx, SummaryQuery{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(fresh.Period.Income))

	hit, err = f.store.Get(ctx, summaryCacheKey(2025, 3, nil), &cached)
	require.NoError(t, err)
	assert.True(t, hit, "undisturbed compute is cached")
}
