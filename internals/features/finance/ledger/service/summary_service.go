package service

import (
	"context"
	"fmt"
	"time"

	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/features/finance/ledger/model"
	"masjidku_portal/internals/features/finance/ledger/repository"
	siteSettings "masjidku_portal/internals/features/settings/site_settings/service"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SummaryQuery struct {
	Year   int
	Month  int
	FundID *uuid.UUID
}

type SummaryService struct {
	DB       *gorm.DB
	Repo     *repository.SummaryRepository
	Cache    cache.Store
	CacheTTL time.Duration
	Loc      *time.Location
	Now      dbtime.Clock
	Log      *zap.Logger
}

func NewSummaryService(db *gorm.DB, store cache.Store, ttl time.Duration, loc *time.Location, zl *zap.Logger) *SummaryService {
	if loc == nil {
		loc = time.UTC
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &SummaryService{
		DB:       db,
		Repo:     repository.NewSummaryRepository(db),
		Cache:    store,
		CacheTTL: ttl,
		Loc:      loc,
		Now:      dbtime.SystemClock,
		Log:      zl,
	}
}

func summaryCacheKey(year, month int, fundID *uuid.UUID) string {
	scope := "all"
	if fundID != nil {
		scope = fundID.String()
	}
	return fmt.Sprintf("finance:summary:%04d-%02d:%s", year, month, scope)
}

// Summary: bulan/tahun kosong -> bulan berjalan di zona aplikasi.
func (s *SummaryService) Summary(ctx context.Context, q SummaryQuery) (model.Summary, error) {
	now := s.Now().In(s.Loc)
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	key := summaryCacheKey(q.Year, q.Month, q.FundID)
	cacheable := s.Cache != nil
	var gen int64
	if cacheable {
		var cached model.Summary
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Log.Warn("finance summary cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
		// generasi dibaca sebelum compute; transaksi yang masuk selama compute membatalkan simpan
		if gen, err = s.Cache.Generation(ctx, cache.TagFinance); err != nil {
			s.Log.Warn("finance summary cache generation failed", zap.Error(err))
			cacheable = false
		}
	}

	summary, err := s.compute(ctx, q)
	if err != nil {
		return model.Summary{}, err
	}

	if cacheable {
		stored, err := s.Cache.SetAtGeneration(ctx, key, summary, s.CacheTTL, cache.TagFinance, gen)
		if err != nil {
			s.Log.Warn("finance summary cache write failed", zap.String("key", key), zap.Error(err))
		} else if !stored {
			s.Log.Debug("finance summary not cached, ledger changed during compute", zap.String("key", key))
		}
	}
	return summary, nil
}

func (s *SummaryService) compute(ctx context.Context, q SummaryQuery) (model.Summary, error) {
	start, end := PeriodWindow(q.Year, q.Month, s.Loc)

	funds, err := s.Repo.ListFunds(ctx)
	if err != nil {
		return model.Summary{}, fmt.Errorf("gagal membaca dana: %w", err)
	}
	periodSums, err := s.Repo.SumByFundAndType(ctx, &repository.DateRange{From: start, To: end}, q.FundID)
	if err != nil {
		return model.Summary{}, fmt.Errorf("gagal menjumlah transaksi periode: %w", err)
	}
	allTimeSums, err := s.Repo.SumByFundAndType(ctx, nil, q.FundID)
	if err != nil {
		return model.Summary{}, fmt.Errorf("gagal menjumlah transaksi: %w", err)
	}
	settings, err := siteSettings.FetchSiteSettings(ctx, s.DB)
	if err != nil {
		return model.Summary{}, fmt.Errorf("gagal membaca pengaturan: %w", err)
	}

	summary, err := Aggregate(AggregateInput{
		Funds:          funds,
		PeriodSums:     periodSums,
		AllTimeSums:    allTimeSums,
		OpeningBalance: settings.OpeningBalance,
		FundFilter:     q.FundID,
	})
	if err != nil {
		return model.Summary{}, err
	}
	summary.Year = start.Year()
	summary.Month = int(start.Month())
	summary.PeriodStart = start
	summary.PeriodEnd = end
	return summary, nil
}
