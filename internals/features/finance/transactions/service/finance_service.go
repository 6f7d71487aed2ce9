package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"masjidku_portal/internals/cache"
	fundModel "masjidku_portal/internals/features/finance/funds/model"
	"masjidku_portal/internals/features/finance/transactions/model"
	helper "masjidku_portal/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrFinanceNotFound = fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
	ErrNegativeAmount  = fiber.NewError(fiber.StatusBadRequest, "Nominal tidak boleh negatif")
	ErrInvalidType     = fiber.NewError(fiber.StatusBadRequest, "Tipe transaksi harus INCOME atau EXPENSE")
	ErrFundUnknown     = fiber.NewError(fiber.StatusUnprocessableEntity, "Dana tidak ditemukan")
	ErrFundInactive    = fiber.NewError(fiber.StatusUnprocessableEntity, "Dana sudah dinonaktifkan, transaksi baru tidak bisa dicatat")
)

type FinanceInput struct {
	Type          model.FinanceType
	Amount        decimal.Decimal
	Category      *string
	FundID        uuid.UUID
	Date          time.Time
	Description   string
	DonorName     *string
	IsAnonymous   bool
	PaymentMethod *string
	CreatedBy     *uuid.UUID
}

type ListFilter struct {
	// From/To inklusif; zero = tanpa batas
	From   time.Time
	To     time.Time
	FundID *uuid.UUID
	Type   model.FinanceType
	Q      string
}

type FinanceService struct {
	DB    *gorm.DB
	Cache cache.Store
	Log   *zap.Logger
}

func NewFinanceService(db *gorm.DB, store cache.Store, zl *zap.Logger) *FinanceService {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &FinanceService{DB: db, Cache: store, Log: zl}
}

func (s *FinanceService) invalidate(ctx context.Context) {
	if err := cache.Invalidate(ctx, s.Cache, cache.TagFinance); err != nil {
		s.Log.Warn("finance cache invalidation failed", zap.Error(err))
	}
}

func validateInput(in FinanceInput) error {
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if in.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// lookupFund: requireActive hanya untuk transaksi baru / pindah dana.
func lookupFund(tx *gorm.DB, id uuid.UUID, requireActive bool) error {
	var f fundModel.FundModel
	if err := tx.Select("fund_id", "fund_is_active").First(&f, "fund_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFundUnknown
		}
		return err
	}
	if requireActive && !f.FundIsActive {
		return ErrFundInactive
	}
	return nil
}

func (s *FinanceService) Create(ctx context.Context, in FinanceInput) (model.FinanceModel, error) {
	if err := validateInput(in); err != nil {
		return model.FinanceModel{}, err
	}
	db := s.DB.WithContext(ctx)
	if err := lookupFund(db, in.FundID, true); err != nil {
		return model.FinanceModel{}, err
	}

	fundID := in.FundID
	row := model.FinanceModel{
		FinanceType:          in.Type,
		FinanceAmount:        in.Amount,
		FinanceCategory:      trimPtr(in.Category),
		FinanceFundID:        &fundID,
		FinanceDate:          model.CalendarDate(in.Date),
		FinanceDescription:   strings.TrimSpace(in.Description),
		FinanceDonorName:     trimPtr(in.DonorName),
		FinanceIsAnonymous:   in.IsAnonymous,
		FinancePaymentMethod: trimPtr(in.PaymentMethod),
		FinanceCreatedBy:     in.CreatedBy,
	}
	if err := db.Create(&row).Error; err != nil {
		return model.FinanceModel{}, err
	}
	s.invalidate(ctx)
	return row, nil
}

func (s *FinanceService) Get(ctx context.Context, id uuid.UUID) (model.FinanceModel, error) {
	var row model.FinanceModel
	err := s.DB.WithContext(ctx).First(&row, "finance_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FinanceModel{}, ErrFinanceNotFound
	}
	return row, err
}

// Update: last write wins. Pindah ke dana lain mensyaratkan dana tujuan aktif.
func (s *FinanceService) Update(ctx context.Context, id uuid.UUID, in FinanceInput) (model.FinanceModel, error) {
	if err := validateInput(in); err != nil {
		return model.FinanceModel{}, err
	}
	row, err := s.Get(ctx, id)
	if err != nil {
		return model.FinanceModel{}, err
	}
	moving := row.FinanceFundID == nil || *row.FinanceFundID != in.FundID
	if err := lookupFund(s.DB.WithContext(ctx), in.FundID, moving); err != nil {
		return model.FinanceModel{}, err
	}

	fundID := in.FundID
	row.FinanceType = in.Type
	row.FinanceAmount = in.Amount
	row.FinanceCategory = trimPtr(in.Category)
	row.FinanceFundID = &fundID
	row.FinanceDate = model.CalendarDate(in.Date)
	row.FinanceDescription = strings.TrimSpace(in.Description)
	row.FinanceDonorName = trimPtr(in.DonorName)
	row.FinanceIsAnonymous = in.IsAnonymous
	row.FinancePaymentMethod = trimPtr(in.PaymentMethod)

	if err := s.DB.WithContext(ctx).Save(&row).Error; err != nil {
		return model.FinanceModel{}, err
	}
	s.invalidate(ctx)
	return row, nil
}

func (s *FinanceService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&model.FinanceModel{}, "finance_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFinanceNotFound
	}
	s.invalidate(ctx)
	return nil
}

// List: urut tanggal terbaru, lalu waktu input.
func (s *FinanceService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]model.FinanceModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.FinanceModel{})
	if !f.From.IsZero() {
		q = q.Where("finance_date >= ?", model.CalendarDate(f.From))
	}
	if !f.To.IsZero() {
		q = q.Where("finance_date <= ?", model.CalendarDate(f.To))
	}
	if f.FundID != nil {
		q = q.Where("finance_fund_id = ?", *f.FundID)
	}
	if f.Type != "" {
		q = q.Where("finance_type = ?", f.Type)
	}
	if kw := strings.TrimSpace(f.Q); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("LOWER(finance_description) LIKE ? OR LOWER(COALESCE(finance_category, '')) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.FinanceModel
	if err := q.Order("finance_date DESC").Order("created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
