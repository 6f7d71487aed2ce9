package dto

import (
	"time"

	"masjidku_portal/internals/features/finance/transactions/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const AnonymousDonorName = "Hamba Allah"

type FinanceRequest struct {
	FinanceType          model.FinanceType `json:"finance_type" validate:"required,oneof=INCOME EXPENSE"`
	FinanceAmount        decimal.Decimal   `json:"finance_amount"`
	FinanceCategory      *string           `json:"finance_category" validate:"omitempty,max=60"`
	FinanceFundID        uuid.UUID         `json:"finance_fund_id" validate:"required"`
	FinanceDate          string            `json:"finance_date" validate:"required,datetime=2006-01-02"`
	FinanceDescription   string            `json:"finance_description" validate:"max=2000"`
	FinanceDonorName     *string           `json:"finance_donor_name" validate:"omitempty,max=120"`
	FinanceIsAnonymous   bool              `json:"finance_is_anonymous"`
	FinancePaymentMethod *string           `json:"finance_payment_method" validate:"omitempty,max=60"`
}

// ListQuery = filter daftar transaksi (bulan/tahun opsional, keduanya atau tidak sama sekali).
type ListQuery struct {
	Year   int               `query:"year" validate:"omitempty,min=2000,max=2100"`
	Month  int               `query:"month" validate:"omitempty,min=1,max=12"`
	FundID string            `query:"fund_id" validate:"omitempty,uuid"`
	Type   model.FinanceType `query:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Q      string            `query:"q"`
}

// PublicFinance: tanpa created_by, nama donor disamarkan bila anonim.
type PublicFinance struct {
	FinanceID          uuid.UUID         `json:"finance_id"`
	FinanceType        model.FinanceType `json:"finance_type"`
	FinanceAmount      decimal.Decimal   `json:"finance_amount"`
	FinanceAmountLabel string            `json:"finance_amount_label"`
	FinanceCategory    *string           `json:"finance_category,omitempty"`
	FinanceFundID      *uuid.UUID        `json:"finance_fund_id,omitempty"`
	FinanceDate        string            `json:"finance_date"`
	FinanceDescription string            `json:"finance_description"`
	FinanceDonorName   *string           `json:"finance_donor_name,omitempty"`
}

func ToPublicFinance(m model.FinanceModel, amountLabel string) PublicFinance {
	donor := m.FinanceDonorName
	if m.FinanceIsAnonymous {
		name := AnonymousDonorName
		donor = &name
	}
	return PublicFinance{
		FinanceID:          m.FinanceID,
		FinanceType:        m.FinanceType,
		FinanceAmount:      m.FinanceAmount,
		FinanceAmountLabel: amountLabel,
		FinanceCategory:    m.FinanceCategory,
		FinanceFundID:      m.FinanceFundID,
		FinanceDate:        time.Time(m.FinanceDate).Format("2006-01-02"),
		FinanceDescription: m.FinanceDescription,
		FinanceDonorName:   donor,
	}
}
