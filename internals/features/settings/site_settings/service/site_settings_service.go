package service

import (
	"context"
	"errors"

	"masjidku_portal/internals/cache"
	"masjidku_portal/internals/features/settings/site_settings/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FetchSiteSettings membaca baris id=1. Belum ada baris -> nilai kosong dengan saldo awal 0.
func FetchSiteSettings(ctx context.Context, db *gorm.DB) (model.SiteSettingsModel, error) {
	var s model.SiteSettingsModel
	err := db.WithContext(ctx).First(&s, "id = ?", model.SiteSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SiteSettingsModel{ID: model.SiteSettingsID, OpeningBalance: decimal.Zero}, nil
	}
	if err != nil {
		return model.SiteSettingsModel{}, err
	}
	return s, nil
}

// SaveSiteSettings meng-upsert singleton lalu membuang cache ringkasan keuangan
// (saldo awal ikut dihitung di sana).
func SaveSiteSettings(ctx context.Context, db *gorm.DB, store cache.Store, s model.SiteSettingsModel) (model.SiteSettingsModel, error) {
	s.ID = model.SiteSettingsID
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&s).Error; err != nil {
		return model.SiteSettingsModel{}, err
	}
	if store != nil {
		if err := store.InvalidateTag(ctx, cache.TagFinance); err != nil {
			return s, err
		}
	}
	return s, nil
}
