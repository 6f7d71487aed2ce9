package finance

import (
	"context"

	fundModel "masjidku_portal/internals/features/finance/funds/model"
	siteSettingsModel "masjidku_portal/internals/features/settings/site_settings/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultFunds = []fundModel.FundModel{
	{FundName: "Kas Operasional", FundType: fundModel.FundTypeOperasional, FundDescription: "Listrik, air, kebersihan & honor marbot"},
	{FundName: "Zakat", FundType: fundModel.FundTypeZakat, FundIsRestricted: true, FundDescription: "Zakat fitrah & maal, disalurkan ke 8 asnaf"},
	{FundName: "Infaq Sosial", FundType: fundModel.FundTypeSosial, FundDescription: "Santunan yatim & dhuafa"},
	{FundName: "Pembangunan", FundType: fundModel.FundTypePembangunan, FundIsRestricted: true, FundDescription: "Renovasi & perluasan masjid"},
}

// SeedFunds menambah dana bawaan (berdasarkan nama) dan baris site_settings id=1.
func SeedFunds(ctx context.Context, db *gorm.DB, zl *zap.Logger) error {
	for _, f := range defaultFunds {
		f.FundIsActive = true
		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "fund_name"}}, DoNothing: true}).
			Create(&f)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			zl.Info("✅ Dana dibuat", zap.String("fund", f.FundName))
		}
	}

	settings := siteSettingsModel.SiteSettingsModel{
		ID:             siteSettingsModel.SiteSettingsID,
		SiteName:       "Masjid",
		OpeningBalance: decimal.Zero,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&settings).Error
}
