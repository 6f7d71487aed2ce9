package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DailyPrayerTimeModel = cache jadwal sholat + tanggal hijriah per hari.
// PrayerDate unik ("YYYY-MM-DD" zona aplikasi). Baris tidak pernah dihapus.
type DailyPrayerTimeModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PrayerDate string    `gorm:"column:prayer_date;type:varchar(10);not null;uniqueIndex:uq_daily_prayer_times_date" json:"prayer_date"`

	Imsak   string `gorm:"column:imsak;type:varchar(5);not null" json:"imsak"`
	Subuh   string `gorm:"column:subuh;type:varchar(5);not null" json:"subuh"`
	Terbit  string `gorm:"column:terbit;type:varchar(5)" json:"terbit"`
	Dhuha   string `gorm:"column:dhuha;type:varchar(5)" json:"dhuha"`
	Dzuhur  string `gorm:"column:dzuhur;type:varchar(5);not null" json:"dzuhur"`
	Ashar   string `gorm:"column:ashar;type:varchar(5);not null" json:"ashar"`
	Maghrib string `gorm:"column:maghrib;type:varchar(5);not null" json:"maghrib"`
	Isya    string `gorm:"column:isya;type:varchar(5);not null" json:"isya"`

	HijriDay       *int   `gorm:"column:hijri_day" json:"hijri_day,omitempty"`
	HijriMonth     *int   `gorm:"column:hijri_month" json:"hijri_month,omitempty"`
	HijriMonthName string `gorm:"column:hijri_month_name;type:varchar(30)" json:"hijri_month_name"`
	HijriYear      *int   `gorm:"column:hijri_year" json:"hijri_year,omitempty"`
	HijriDayName   string `gorm:"column:hijri_day_name;type:varchar(20)" json:"hijri_day_name"`
	HijriFullDate  string `gorm:"column:hijri_full_date;type:varchar(60)" json:"hijri_full_date"`

	CityCode     string         `gorm:"column:city_code;type:varchar(10);not null" json:"city_code"`
	LocationName string         `gorm:"column:location_name;type:varchar(100)" json:"location_name"`
	RawPayload   datatypes.JSON `gorm:"column:raw_payload" json:"-"`
	FetchedAt    time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DailyPrayerTimeModel) TableName() string {
	return "daily_prayer_times"
}

func (m *DailyPrayerTimeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
