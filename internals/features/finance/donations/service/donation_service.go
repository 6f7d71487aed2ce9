package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/features/finance/donations/model"
	fundModel "masjidku_portal/internals/features/finance/funds/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDonationNotFound = fiber.NewError(fiber.StatusNotFound, "Donasi tidak ditemukan")
	ErrFundNotAccepting = fiber.NewError(fiber.StatusUnprocessableEntity, "Dana tidak menerima donasi")
	ErrInvalidAmount    = fiber.NewError(fiber.StatusUnprocessableEntity, "Nominal donasi harus bilangan bulat rupiah dan minimal Rp 1.000")
	ErrInvalidSignature = fiber.NewError(fiber.StatusForbidden, "Signature notifikasi tidak valid")
	ErrAmountMismatch   = fiber.NewError(fiber.StatusUnprocessableEntity, "Nominal notifikasi tidak sesuai donasi")
	ErrGatewayFailed    = fiber.NewError(fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
)

var minDonation = decimal.NewFromInt(1000)

// idempotencyTTL > jendela retry notifikasi Midtrans.
const idempotencyTTL = 72 * time.Hour

const midtransTimeLayout = "2006-01-02 15:04:05"

type CreateInput struct {
	FundID      uuid.UUID
	Amount      decimal.Decimal
	DonorName   string
	DonorEmail  string
	IsAnonymous bool
	Message     string
}

type CreateResult struct {
	Donation    model.OnlineDonationModel
	RedirectURL string
}

// Notification = payload HTTP notification Midtrans (JSON maupun form).
type Notification struct {
	OrderID           string `json:"order_id" form:"order_id"`
	StatusCode        string `json:"status_code" form:"status_code"`
	GrossAmount       string `json:"gross_amount" form:"gross_amount"`
	SignatureKey      string `json:"signature_key" form:"signature_key"`
	TransactionStatus string `json:"transaction_status" form:"transaction_status"`
	FraudStatus       string `json:"fraud_status" form:"fraud_status"`
	PaymentType       string `json:"payment_type" form:"payment_type"`
	TransactionTime   string `json:"transaction_time" form:"transaction_time"`
	SettlementTime    string `json:"settlement_time" form:"settlement_time"`
}

type Outcome struct {
	OrderID   string               `json:"order_id"`
	Status    model.DonationStatus `json:"status"`
	FinanceID *uuid.UUID           `json:"finance_id,omitempty"`
	Duplicate bool                 `json:"duplicate"`
}

type DonationService struct {
	DB        *gorm.DB
	Gateway   SnapGateway
	Idem      cache.IdempotencyStore
	Cache     cache.Store
	ServerKey string
	Loc       *time.Location
	Now       dbtime.Clock
	Log       *zap.Logger
}

func NewDonationService(db *gorm.DB, gw SnapGateway, idem cache.IdempotencyStore, store cache.Store, serverKey string, loc *time.Location, zl *zap.Logger) *DonationService {
	if loc == nil {
		loc = time.UTC
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &DonationService{
		DB: db, Gateway: gw, Idem: idem, Cache: store,
		ServerKey: serverKey, Loc: loc, Now: dbtime.SystemClock, Log: zl,
	}
}

func (s *DonationService) newOrderID() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("DON-%s-%s", s.Now().In(s.Loc).Format("20060102"), id)
}

// Create: dana harus aktif; baris pending dibuat dulu, lalu token Snap disimpan.
func (s *DonationService) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if in.Amount.LessThan(minDonation) || !in.Amount.Equal(in.Amount.Truncate(0)) {
		return CreateResult{}, ErrInvalidAmount
	}
	db := s.DB.WithContext(ctx)

	var fund fundModel.FundModel
	if err := db.First(&fund, "fund_id = ?", in.FundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreateResult{}, ErrFundNotAccepting
		}
		return CreateResult{}, err
	}
	if !fund.FundIsActive {
		return CreateResult{}, ErrFundNotAccepting
	}

	d := model.OnlineDonationModel{
		DonationOrderID:     s.newOrderID(),
		DonationFundID:      fund.FundID,
		DonationAmount:      in.Amount,
		DonationDonorName:   strings.TrimSpace(in.DonorName),
		DonationDonorEmail:  strings.TrimSpace(in.DonorEmail),
		DonationIsAnonymous: in.IsAnonymous,
		DonationMessage:     strings.TrimSpace(in.Message),
		DonationStatus:      model.DonationPending,
	}
	if err := db.Create(&d).Error; err != nil {
		return CreateResult{}, err
	}

	snapRes, err := s.Gateway.CreateSnap(ctx, SnapRequest{
		OrderID:    d.DonationOrderID,
		Amount:     d.DonationAmount,
		DonorName:  d.DonationDonorName,
		DonorEmail: d.DonationDonorEmail,
		ItemName:   truncate("Donasi "+fund.FundName, 50),
	})
	if err != nil {
		s.Log.Error("snap create failed", zap.String("order_id", d.DonationOrderID), zap.Error(err))
		if uerr := db.Model(&d).Update("donation_status", model.DonationFailed).Error; uerr != nil {
			s.Log.Warn("mark donation failed", zap.String("order_id", d.DonationOrderID), zap.Error(uerr))
		}
		return CreateResult{}, ErrGatewayFailed
	}

	d.DonationSnapToken = snapRes.Token
	if err := db.Model(&d).Update("donation_snap_token", snapRes.Token).Error; err != nil {
		return CreateResult{}, err
	}
	return CreateResult{Donation: d, RedirectURL: snapRes.RedirectURL}, nil
}

func (s *DonationService) GetByOrderID(ctx context.Context, orderID string) (model.OnlineDonationModel, error) {
	var d model.OnlineDonationModel
	err := s.DB.WithContext(ctx).First(&d, "donation_order_id = ?", strings.TrimSpace(orderID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, ErrDonationNotFound
	}
	return d, err
}

type ListFilter struct {
	Status model.DonationStatus
	FundID *uuid.UUID
}

func (s *DonationService) List(ctx context.Context, f ListFilter, offset, limit int) ([]model.OnlineDonationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.OnlineDonationModel{})
	if f.Status != "" {
		q = q.Where("donation_status = ?", f.Status)
	}
	if f.FundID != nil {
		q = q.Where("donation_fund_id = ?", *f.FundID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.OnlineDonationModel
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// VerifySignature: sha512(order_id + status_code + gross_amount + server_key), hex.
func (s *DonationService) VerifySignature(n Notification) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + s.ServerKey))
	expected := hex.EncodeToString(sum[:])
	got := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// MapStatus menerjemahkan transaction_status Midtrans. "" = abaikan.
func MapStatus(txStatus, fraudStatus string) model.DonationStatus {
	switch strings.ToLower(txStatus) {
	case "capture":
		if strings.EqualFold(fraudStatus, "challenge") {
			return model.DonationPending
		}
		return model.DonationPaid
	case "settlement":
		return model.DonationPaid
	case "pending":
		return model.DonationPending
	case "expire":
		return model.DonationExpired
	case "cancel", "deny", "failure":
		return model.DonationFailed
	default:
		return ""
	}
}

// HandleNotification memproses satu notifikasi. Idempoten per order_id:transaction_status;
// pelunasan membuat satu baris INCOME di dana donasi dalam transaksi yang sama.
func (s *DonationService) HandleNotification(ctx context.Context, n Notification) (Outcome, error) {
	if !s.VerifySignature(n) {
		return Outcome{}, ErrInvalidSignature
	}
	n.TransactionStatus = strings.ToLower(strings.TrimSpace(n.TransactionStatus))
	out := Outcome{OrderID: n.OrderID}

	key := n.OrderID + ":" + n.TransactionStatus
	fresh, err := s.Idem.MarkProcessed(ctx, key, idempotencyTTL)
	if err != nil {
		return Outcome{}, err
	}
	if !fresh {
		out.Duplicate = true
		d, err := s.GetByOrderID(ctx, n.OrderID)
		if err != nil {
			return Outcome{}, err
		}
		out.Status = d.DonationStatus
		out.FinanceID = d.DonationFinanceID
		return out, nil
	}

	out, created, err := s.apply(ctx, n)
	if err != nil {
		if rerr := s.Idem.Release(ctx, key); rerr != nil {
			s.Log.Warn("idempotency release failed", zap.String("key", key), zap.Error(rerr))
		}
		return Outcome{}, err
	}
	if created {
		if err := cache.Invalidate(ctx, s.Cache, cache.TagFinance); err != nil {
			s.Log.Warn("finance cache invalidation failed", zap.Error(err))
		}
	}
	return out, nil
}

func (s *DonationService) apply(ctx context.Context, n Notification) (Outcome, bool, error) {
	out := Outcome{OrderID: n.OrderID}
	next := MapStatus(n.TransactionStatus, n.FraudStatus)
	created := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d model.OnlineDonationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, "donation_order_id = ?", n.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDonationNotFound
			}
			return err
		}
		out.Status = d.DonationStatus
		out.FinanceID = d.DonationFinanceID

		if next == "" {
			s.Log.Info("midtrans status ignored", zap.String("order_id", n.OrderID), zap.String("status", n.TransactionStatus))
			return nil
		}
		// sudah lunas: tidak turun status lagi
		if d.DonationStatus == model.DonationPaid {
			return nil
		}

		updates := map[string]any{"donation_status": next}
		if pt := strings.TrimSpace(n.PaymentType); pt != "" {
			updates["donation_payment_type"] = pt
			d.DonationPaymentType = pt
		}

		if next == model.DonationPaid {
			if gross, err := decimal.NewFromString(strings.TrimSpace(n.GrossAmount)); err != nil || !gross.Equal(d.DonationAmount) {
				return ErrAmountMismatch
			}
			paidAt := s.paidAt(n)
			fin := financeRowFor(d, paidAt, s.Loc)
			if err := tx.Create(&fin).Error; err != nil {
				return err
			}
			updates["donation_finance_id"] = fin.FinanceID
			updates["donation_paid_at"] = paidAt
			out.FinanceID = &fin.FinanceID
			created = true
		}

		if err := tx.Model(&d).Updates(updates).Error; err != nil {
			return err
		}
		out.Status = next
		return nil
	})
	return out, created, err
}

func (s *DonationService) paidAt(n Notification) time.Time {
	for _, raw := range []string{n.SettlementTime, n.TransactionTime} {
		if t, err := time.ParseInLocation(midtransTimeLayout, strings.TrimSpace(raw), s.Loc); err == nil {
			return t
		}
	}
	return s.Now().In(s.Loc)
}

// financeRowFor: INCOME di dana donasi, tanggal = tanggal bayar di zona aplikasi.
func financeRowFor(d model.OnlineDonationModel, paidAt time.Time, loc *time.Location) financeModel.FinanceModel {
	fundID := d.DonationFundID
	method := "midtrans"
	if d.DonationPaymentType != "" {
		method += ":" + d.DonationPaymentType
	}
	category := "Donasi Online"
	row := financeModel.FinanceModel{
		FinanceType:          financeModel.FinanceIncome,
		FinanceAmount:        d.DonationAmount,
		FinanceCategory:      &category,
		FinanceFundID:        &fundID,
		FinanceDate:          financeModel.CalendarDate(paidAt.In(loc)),
		FinanceDescription:   "Donasi online " + d.DonationOrderID,
		FinanceIsAnonymous:   d.DonationIsAnonymous,
		FinancePaymentMethod: &method,
	}
	if name := strings.TrimSpace(d.DonationDonorName); name != "" {
		row.FinanceDonorName = &name
	}
	return row
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
