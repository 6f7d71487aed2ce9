package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const SiteSettingsID = 1

// SiteSettingsModel singleton (id = 1). OpeningBalance = saldo awal historis,
// dihitung ke dana OPERASIONAL pertama.
type SiteSettingsModel struct {
	ID                uint            `gorm:"column:id;primaryKey" json:"id"`
	SiteName          string          `gorm:"column:site_name;type:varchar(150)" json:"site_name"`
	SiteAddress       string          `gorm:"column:site_address;type:text" json:"site_address"`
	SitePhone         string          `gorm:"column:site_phone;type:varchar(30)" json:"site_phone"`
	BankName          string          `gorm:"column:bank_name;type:varchar(60)" json:"bank_name"`
	BankAccountNumber string          `gorm:"column:bank_account_number;type:varchar(40)" json:"bank_account_number"`
	BankAccountHolder string          `gorm:"column:bank_account_holder;type:varchar(120)" json:"bank_account_holder"`
	OpeningBalance    decimal.Decimal `gorm:"column:opening_balance;type:decimal(20,2);not null" json:"opening_balance"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SiteSettingsModel) TableName() string {
	return "site_settings"
}
