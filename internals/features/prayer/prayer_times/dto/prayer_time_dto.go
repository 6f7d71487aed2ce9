package dto

import (
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/features/prayer/prayer_times/model"
	"masjidku_portal/internals/features/prayer/prayer_times/service"
)

type PrayerTimeResponse struct {
	PrayerDate string             `json:"prayer_date"`
	Schedule   countdown.Schedule `json:"schedule"`
	Hijri      *service.HijriView `json:"hijri,omitempty"`
	CityCode   string             `json:"city_code"`
	Location   string             `json:"location_name"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

func ToPrayerTimeResponse(m model.DailyPrayerTimeModel) PrayerTimeResponse {
	r := PrayerTimeResponse{
		PrayerDate: m.PrayerDate,
		Schedule:   service.ScheduleOf(m),
		CityCode:   m.CityCode,
		Location:   m.LocationName,
		FetchedAt:  m.FetchedAt,
	}
	if m.HijriFullDate != "" || m.HijriDay != nil {
		r.Hijri = &service.HijriView{
			Day: m.HijriDay, Month: m.HijriMonth, Year: m.HijriYear,
			MonthName: m.HijriMonthName, DayName: m.HijriDayName, FullDate: m.HijriFullDate,
		}
	}
	return r
}

type UpdateSettingRequest struct {
	CityCode        string `json:"city_code" validate:"required,numeric,max=10"`
	CityName        string `json:"city_name" validate:"omitempty,max=100"`
	HijriAdjustment int    `json:"hijri_adjustment" validate:"min=-2,max=2"`
	IncludeImsak    *bool  `json:"include_imsak_in_countdown"`
}

// ToModel: include_imsak kosong -> nilai lama dipertahankan.
func (r UpdateSettingRequest) ToModel(current model.PrayerTimeSettingModel) model.PrayerTimeSettingModel {
	m := current
	m.CityCode = r.CityCode
	m.CityName = r.CityName
	m.HijriAdjustment = r.HijriAdjustment
	if r.IncludeImsak != nil {
		m.IncludeImsakInCountdown = *r.IncludeImsak
	}
	return m
}
