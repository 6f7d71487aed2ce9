package model

import "time"

const PrayerTimeSettingID = 1

// PrayerTimeSettingModel singleton (id = 1), dibaca eksplisit per request.
type PrayerTimeSettingModel struct {
	ID                      uint      `gorm:"column:id;primaryKey" json:"id"`
	CityCode                string    `gorm:"column:city_code;type:varchar(10);not null" json:"city_code"`
	CityName                string    `gorm:"column:city_name;type:varchar(100)" json:"city_name"`
	HijriAdjustment         int       `gorm:"column:hijri_adjustment;not null" json:"hijri_adjustment"`
	IncludeImsakInCountdown bool      `gorm:"column:include_imsak_in_countdown;not null" json:"include_imsak_in_countdown"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PrayerTimeSettingModel) TableName() string {
	return "prayer_time_settings"
}
