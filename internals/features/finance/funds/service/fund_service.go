package service

import (
	"context"
	"errors"
	"strings"

	"masjidku_portal/internals/cache"
	donationModel "masjidku_portal/internals/features/finance/donations/model"
	"masjidku_portal/internals/features/finance/funds/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"
	helper "masjidku_portal/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrFundNotFound        = fiber.NewError(fiber.StatusNotFound, "Dana tidak ditemukan")
	ErrFundNameTaken       = fiber.NewError(fiber.StatusConflict, "Nama dana sudah dipakai")
	ErrFundHasTransactions = fiber.NewError(fiber.StatusConflict,
		"Dana masih memiliki transaksi dan tidak bisa dihapus. Nonaktifkan dana ini sebagai gantinya.")
)

type FundService struct {
	DB    *gorm.DB
	Cache cache.Store
	Log   *zap.Logger
}

func NewFundService(db *gorm.DB, store cache.Store, zl *zap.Logger) *FundService {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &FundService{DB: db, Cache: store, Log: zl}
}

func (s *FundService) invalidate(ctx context.Context) {
	if err := cache.Invalidate(ctx, s.Cache, cache.TagFinance); err != nil {
		s.Log.Warn("finance cache invalidation failed", zap.Error(err))
	}
}

func (s *FundService) List(ctx context.Context, activeOnly bool) ([]model.FundModel, error) {
	q := s.DB.WithContext(ctx).Order("fund_name ASC")
	if activeOnly {
		q = q.Where("fund_is_active = ?", true)
	}
	var funds []model.FundModel
	if err := q.Find(&funds).Error; err != nil {
		return nil, err
	}
	return funds, nil
}

func (s *FundService) Get(ctx context.Context, id uuid.UUID) (model.FundModel, error) {
	var f model.FundModel
	err := s.DB.WithContext(ctx).First(&f, "fund_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FundModel{}, ErrFundNotFound
	}
	return f, err
}

func (s *FundService) Create(ctx context.Context, f model.FundModel) (model.FundModel, error) {
	f.FundName = strings.TrimSpace(f.FundName)
	if err := s.DB.WithContext(ctx).Create(&f).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.FundModel{}, ErrFundNameTaken
		}
		return model.FundModel{}, err
	}
	s.invalidate(ctx)
	return f, nil
}

// Update menerapkan apply ke baris yang ada lalu menyimpan.
func (s *FundService) Update(ctx context.Context, id uuid.UUID, apply func(*model.FundModel)) (model.FundModel, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return model.FundModel{}, err
	}
	apply(&f)
	f.FundName = strings.TrimSpace(f.FundName)
	if err := s.DB.WithContext(ctx).Save(&f).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.FundModel{}, ErrFundNameTaken
		}
		return model.FundModel{}, err
	}
	s.invalidate(ctx)
	return f, nil
}

func (s *FundService) Deactivate(ctx context.Context, id uuid.UUID) (model.FundModel, error) {
	return s.Update(ctx, id, func(f *model.FundModel) { f.FundIsActive = false })
}

// Delete permanen, hanya untuk dana yang belum pernah dipakai transaksi/donasi.
// Pengecekan dan penghapusan berada dalam satu transaksi DB.
func (s *FundService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f model.FundModel
		if err := tx.First(&f, "fund_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFundNotFound
			}
			return err
		}

		var used int64
		if err := tx.Model(&financeModel.FinanceModel{}).
			Where("finance_fund_id = ?", id).
			Count(&used).Error; err != nil {
			return err
		}
		if used == 0 {
			if err := tx.Model(&donationModel.OnlineDonationModel{}).
				Where("donation_fund_id = ?", id).
				Count(&used).Error; err != nil {
				return err
			}
		}
		if used > 0 {
			return ErrFundHasTransactions
		}

		return tx.Delete(&model.FundModel{}, "fund_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
