package model

import (
	"time"

	fundModel "masjidku_portal/internals/features/finance/funds/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const UnknownFundName = "Unknown"

// FundInfo = potongan FundModel yang dibutuhkan agregasi.
type FundInfo struct {
	ID           uuid.UUID
	Name         string
	Type         fundModel.FundType
	IsRestricted bool
	IsActive     bool
}

// FundTypeSum = satu baris hasil GROUP BY (fund, type).
type FundTypeSum struct {
	FundID *uuid.UUID               `gorm:"column:fund_id"`
	Type   financeModel.FinanceType `gorm:"column:finance_type"`
	Total  decimal.Decimal          `gorm:"column:total"`
}

type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type FundBalance struct {
	FundID                 *uuid.UUID         `json:"fund_id"`
	FundName               string             `json:"fund_name"`
	FundType               fundModel.FundType `json:"fund_type"`
	IsRestricted           bool               `json:"is_restricted"`
	IsActive               bool               `json:"is_active"`
	Income                 decimal.Decimal    `json:"income"`
	Expense                decimal.Decimal    `json:"expense"`
	Balance                decimal.Decimal    `json:"balance"`
	IncludesOpeningBalance bool               `json:"includes_opening_balance"`
}

// Block = satu cakupan waktu (periode atau sepanjang waktu).
type Block struct {
	Totals
	Funds       []FundBalance `json:"funds"`
	Operational Totals        `json:"operational"`
}

type Summary struct {
	Year                 int             `json:"year"`
	Month                int             `json:"month"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	FundID               *uuid.UUID      `json:"fund_id,omitempty"`
	Period               Block           `json:"period"`
	AllTime              Block           `json:"all_time"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	OpeningBalanceFundID *uuid.UUID      `json:"opening_balance_fund_id"`
}
