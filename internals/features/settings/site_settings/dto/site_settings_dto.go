package dto

import (
	"masjidku_portal/internals/features/settings/site_settings/model"

	"github.com/shopspring/decimal"
)

type UpdateSiteSettingsRequest struct {
	SiteName          string          `json:"site_name" validate:"required,max=150"`
	SiteAddress       string          `json:"site_address"`
	SitePhone         string          `json:"site_phone" validate:"omitempty,max=30"`
	BankName          string          `json:"bank_name" validate:"omitempty,max=60"`
	BankAccountNumber string          `json:"bank_account_number" validate:"omitempty,max=40"`
	BankAccountHolder string          `json:"bank_account_holder" validate:"omitempty,max=120"`
	OpeningBalance    decimal.Decimal `json:"opening_balance"`
}

func (r UpdateSiteSettingsRequest) ToModel() model.SiteSettingsModel {
	return model.SiteSettingsModel{
		SiteName:          r.SiteName,
		SiteAddress:       r.SiteAddress,
		SitePhone:         r.SitePhone,
		BankName:          r.BankName,
		BankAccountNumber: r.BankAccountNumber,
		BankAccountHolder: r.BankAccountHolder,
		OpeningBalance:    r.OpeningBalance,
	}
}

// PublicSiteSettings tanpa saldo awal.
type PublicSiteSettings struct {
	SiteName          string `json:"site_name"`
	SiteAddress       string `json:"site_address"`
	SitePhone         string `json:"site_phone"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountHolder string `json:"bank_account_holder"`
}

func ToPublic(m model.SiteSettingsModel) PublicSiteSettings {
	return PublicSiteSettings{
		SiteName:          m.SiteName,
		SiteAddress:       m.SiteAddress,
		SitePhone:         m.SitePhone,
		BankName:          m.BankName,
		BankAccountNumber: m.BankAccountNumber,
		BankAccountHolder: m.BankAccountHolder,
	}
}
