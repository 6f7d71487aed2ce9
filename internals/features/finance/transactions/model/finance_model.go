package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FinanceType string

const (
	FinanceIncome  FinanceType = "INCOME"
	FinanceExpense FinanceType = "EXPENSE"
)

func (t FinanceType) Valid() bool {
	return t == FinanceIncome || t == FinanceExpense
}

// FinanceModel adalah satu baris kas. FinanceDate = tanggal transaksi (bukan waktu input),
// disimpan sebagai tanggal kalender 00:00 UTC. Tidak ada soft delete.
type FinanceModel struct {
	FinanceID            uuid.UUID       `gorm:"column:finance_id;type:uuid;primaryKey" json:"finance_id"`
	FinanceType          FinanceType     `gorm:"column:finance_type;type:varchar(10);not null;index" json:"finance_type"`
	FinanceAmount        decimal.Decimal `gorm:"column:finance_amount;type:decimal(20,2);not null" json:"finance_amount"`
	FinanceCategory      *string         `gorm:"column:finance_category;type:varchar(60)" json:"finance_category,omitempty"`
	FinanceFundID        *uuid.UUID      `gorm:"column:finance_fund_id;type:uuid;index" json:"finance_fund_id,omitempty"`
	FinanceDate          datatypes.Date  `gorm:"column:finance_date;type:date;not null;index" json:"finance_date"`
	FinanceDescription   string          `gorm:"column:finance_description;type:text" json:"finance_description"`
	FinanceDonorName     *string         `gorm:"column:finance_donor_name;type:varchar(120)" json:"finance_donor_name,omitempty"`
	FinanceIsAnonymous   bool            `gorm:"column:finance_is_anonymous;not null" json:"finance_is_anonymous"`
	FinancePaymentMethod *string         `gorm:"column:finance_payment_method;type:varchar(60)" json:"finance_payment_method,omitempty"`
	FinanceCreatedBy     *uuid.UUID      `gorm:"column:finance_created_by;type:uuid" json:"finance_created_by,omitempty"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FinanceModel) TableName() string {
	return "finances"
}

func (f *FinanceModel) BeforeCreate(tx *gorm.DB) error {
	if f.FinanceID == uuid.Nil {
		f.FinanceID = uuid.New()
	}
	return nil
}

// CalendarDate membuang jam & zona: 2025-03-10 15:00 WIB -> 2025-03-10 00:00 UTC.
func CalendarDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
