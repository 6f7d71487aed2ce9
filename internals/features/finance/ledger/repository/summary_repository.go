package repository

import (
	"context"
	"time"

	fundModel "masjidku_portal/internals/features/finance/funds/model"
	"masjidku_portal/internals/features/finance/ledger/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateRange inklusif, dalam tanggal kalender (finance_date).
type DateRange struct {
	From time.Time
	To   time.Time
}

type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{DB: db}
}

// ListFunds: semua dana (aktif & nonaktif), urut nama.
func (r *SummaryRepository) ListFunds(ctx context.Context) ([]model.FundInfo, error) {
	var rows []fundModel.FundModel
	if err := r.DB.WithContext(ctx).
		Order("fund_name ASC").Order("fund_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.FundInfo, 0, len(rows))
	for _, f := range rows {
		out = append(out, model.FundInfo{
			ID:           f.FundID,
			Name:         f.FundName,
			Type:         f.FundType,
			IsRestricted: f.FundIsRestricted,
			IsActive:     f.FundIsActive,
		})
	}
	return out, nil
}

// SumByFundAndType = SELECT fund, type, SUM(amount) ... GROUP BY fund, type.
// window nil -> sepanjang waktu.
func (r *SummaryRepository) SumByFundAndType(ctx context.Context, window *DateRange, fundID *uuid.UUID) ([]model.FundTypeSum, error) {
	q := r.DB.WithContext(ctx).
		Model(&financeModel.FinanceModel{}).
		Select("finance_fund_id AS fund_id, finance_type, COALESCE(SUM(finance_amount), 0) AS total")

	if window != nil {
		q = q.Where("finance_date BETWEEN ? AND ?",
			financeModel.CalendarDate(window.From), financeModel.CalendarDate(window.To))
	}
	if fundID != nil {
		q = q.Where("finance_fund_id = ?", *fundID)
	}

	var rows []model.FundTypeSum
	if err := q.Group("finance_fund_id, finance_type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
