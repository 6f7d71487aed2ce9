package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/client"
	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/features/prayer/prayer_times/model"
	"masjidku_portal/internals/helpers/dbtime"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUpstreamUnavailable = client.ErrUpstreamUnavailable

const (
	SourceCache    = "cache"
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

// ScheduleSource = penyedia jadwal luar (myQuran di produksi, fake di test).
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, city string, date time.Time) (client.DaySchedule, error)
	FetchHijri(ctx context.Context, date time.Time, adj int) (client.HijriDate, error)
	SearchCities(ctx context.Context, keyword string) ([]client.City, error)
}

// Defaults dipakai selama baris prayer_time_settings belum ada.
type Defaults struct {
	CityCode        string
	HijriAdjustment int
	IncludeImsak    bool
}

type SyncService struct {
	DB       *gorm.DB
	Source   ScheduleSource
	Loc      *time.Location
	Now      dbtime.Clock
	Log      *zap.Logger
	Defaults Defaults
	// FetchTimeout membatasi satu pengisian cache, lepas dari ctx pemanggil pertama.
	FetchTimeout time.Duration

	group singleflight.Group
}

func NewSyncService(db *gorm.DB, src ScheduleSource, loc *time.Location, def Defaults, zl *zap.Logger) *SyncService {
	if loc == nil {
		loc = time.UTC
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &SyncService{
		DB:           db,
		Source:       src,
		Loc:          loc,
		Now:          dbtime.SystemClock,
		Log:          zl,
		Defaults:     def,
		FetchTimeout: 15 * time.Second,
	}
}

type Result struct {
	Row    model.DailyPrayerTimeModel
	Source string
}

// FetchSetting: baris id=1 atau default dari konfigurasi.
func (s *SyncService) FetchSetting(ctx context.Context) (model.PrayerTimeSettingModel, error) {
	var m model.PrayerTimeSettingModel
	err := s.DB.WithContext(ctx).First(&m, "id = ?", model.PrayerTimeSettingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PrayerTimeSettingModel{
			ID:                      model.PrayerTimeSettingID,
			CityCode:                s.Defaults.CityCode,
			HijriAdjustment:         s.Defaults.HijriAdjustment,
			IncludeImsakInCountdown: s.Defaults.IncludeImsak,
		}, nil
	}
	if err != nil {
		return model.PrayerTimeSettingModel{}, err
	}
	return m, nil
}

func (s *SyncService) SaveSetting(ctx context.Context, m model.PrayerTimeSettingModel) (model.PrayerTimeSettingModel, error) {
	m.ID = model.PrayerTimeSettingID
	m.CityCode = strings.TrimSpace(m.CityCode)
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&m).Error
	return m, err
}

// Lookup: nil tanpa error bila tanggal belum di-cache.
func (s *SyncService) Lookup(ctx context.Context, dateKey string) (*model.DailyPrayerTimeModel, error) {
	var row model.DailyPrayerTimeModel
	err := s.DB.WithContext(ctx).First(&row, "prayer_date = ?", dateKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// EnsureDate: baca cache; bila kosong ambil dari sumber luar lalu simpan.
// Pemanggil serentak untuk tanggal yang sama berbagi satu panggilan luar.
func (s *SyncService) EnsureDate(ctx context.Context, date time.Time) (Result, error) {
	key := dbtime.DateKey(date, s.Loc)
	row, err := s.Lookup(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if row != nil {
		return Result{Row: *row, Source: SourceCache}, nil
	}

	v, err, _ := s.group.Do("ensure:"+key, func() (any, error) {
		fctx, cancel := s.fillContext(ctx)
		defer cancel()

		// pemanggil lain mungkin sudah mengisi
		if row, err := s.Lookup(fctx, key); err != nil || row != nil {
			if err != nil {
				return nil, err
			}
			return Result{Row: *row, Source: SourceCache}, nil
		}
		row, err := s.fetchAndStore(fctx, date)
		if err != nil {
			return nil, err
		}
		return Result{Row: row, Source: SourceUpstream}, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

// Sync memaksa ambil ulang (admin & scheduler).
func (s *SyncService) Sync(ctx context.Context, date time.Time) (model.DailyPrayerTimeModel, error) {
	key := dbtime.DateKey(date, s.Loc)
	v, err, _ := s.group.Do("sync:"+key, func() (any, error) {
		fctx, cancel := s.fillContext(ctx)
		defer cancel()
		return s.fetchAndStore(fctx, date)
	})
	if err != nil {
		return model.DailyPrayerTimeModel{}, err
	}
	return v.(model.DailyPrayerTimeModel), nil
}

func (s *SyncService) Today(ctx context.Context) (Result, error) {
	return s.EnsureDate(ctx, s.Now().In(s.Loc))
}

func (s *SyncService) fillContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.FetchTimeout)
}

var hijriColumns = []string{
	"hijri_day", "hijri_month", "hijri_month_name", "hijri_year", "hijri_day_name", "hijri_full_date",
}

func (s *SyncService) fetchAndStore(ctx context.Context, date time.Time) (model.DailyPrayerTimeModel, error) {
	setting, err := s.FetchSetting(ctx)
	if err != nil {
		return model.DailyPrayerTimeModel{}, err
	}
	local := date.In(s.Loc)
	key := local.Format(dbtime.DateLayout)

	day, err := s.Source.FetchSchedule(ctx, setting.CityCode, local)
	if err != nil {
		s.Log.Warn("prayer schedule fetch failed",
			zap.String("date", key), zap.String("city", setting.CityCode), zap.Error(err))
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return model.DailyPrayerTimeModel{}, err
	}

	row := model.DailyPrayerTimeModel{
		PrayerDate:   key,
		Imsak:        day.Times.Imsak,
		Subuh:        day.Times.Subuh,
		Terbit:       day.Times.Terbit,
		Dhuha:        day.Times.Dhuha,
		Dzuhur:       day.Times.Dzuhur,
		Ashar:        day.Times.Ashar,
		Maghrib:      day.Times.Maghrib,
		Isya:         day.Times.Isya,
		CityCode:     day.CityCode,
		LocationName: day.Location,
		RawPayload:   datatypes.JSON(day.Raw),
		FetchedAt:    s.Now().UTC(),
	}

	updates := []string{
		"imsak", "subuh", "terbit", "dhuha", "dzuhur", "ashar", "maghrib", "isya",
		"city_code", "location_name", "raw_payload", "fetched_at", "updated_at",
	}

	// hijriah best-effort: gagal -> baris baru tanpa hijriah, baris lama tetap memakai label tersimpan
	if h, err := s.Source.FetchHijri(ctx, local, setting.HijriAdjustment); err != nil {
		s.Log.Warn("hijri date fetch failed", zap.String("date", key), zap.Error(err))
	} else {
		row.HijriDay = &h.Day
		row.HijriMonth = &h.Month
		row.HijriYear = &h.Year
		row.HijriMonthName = h.MonthName
		row.HijriDayName = h.DayName
		row.HijriFullDate = h.FullDate
		updates = append(updates, hijriColumns...)
	}

	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prayer_date"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&row).Error; err != nil {
		return model.DailyPrayerTimeModel{}, err
	}

	stored, err := s.Lookup(ctx, key)
	if err != nil {
		return model.DailyPrayerTimeModel{}, err
	}
	if stored == nil {
		return row, nil
	}
	return *stored, nil
}

func (s *SyncService) SearchCities(ctx context.Context, keyword string) ([]client.City, error) {
	return s.Source.SearchCities(ctx, keyword)
}

// TodayView = jadwal hari ini + sholat berikutnya. Sumber luar gagal dan cache kosong
// -> jadwal bawaan dengan source "fallback".
type TodayView struct {
	Date     string             `json:"date"`
	Schedule countdown.Schedule `json:"schedule"`
	Hijri    *HijriView         `json:"hijri,omitempty"`
	Location string             `json:"location,omitempty"`
	Next     countdown.Next     `json:"next"`
	Source   string             `json:"source"`
	Policy   countdown.Policy   `json:"-"`
}

type HijriView struct {
	Day       *int   `json:"day,omitempty"`
	Month     *int   `json:"month,omitempty"`
	Year      *int   `json:"year,omitempty"`
	MonthName string `json:"month_name"`
	DayName   string `json:"day_name"`
	FullDate  string `json:"full_date"`
}

func ScheduleOf(row model.DailyPrayerTimeModel) countdown.Schedule {
	return countdown.Schedule{
		Imsak: row.Imsak, Subuh: row.Subuh, Terbit: row.Terbit, Dhuha: row.Dhuha,
		Dzuhur: row.Dzuhur, Ashar: row.Ashar, Maghrib: row.Maghrib, Isya: row.Isya,
	}
}

func hijriOf(row model.DailyPrayerTimeModel) *HijriView {
	if row.HijriFullDate == "" && row.HijriDay == nil {
		return nil
	}
	return &HijriView{
		Day: row.HijriDay, Month: row.HijriMonth, Year: row.HijriYear,
		MonthName: row.HijriMonthName, DayName: row.HijriDayName, FullDate: row.HijriFullDate,
	}
}

func (s *SyncService) TodayView(ctx context.Context) (TodayView, error) {
	setting, err := s.FetchSetting(ctx)
	if err != nil {
		return TodayView{}, err
	}
	policy := countdown.Policy{IncludeImsak: setting.IncludeImsakInCountdown}
	now := s.Now().In(s.Loc)

	view := TodayView{Date: now.Format(dbtime.DateLayout), Policy: policy}
	res, err := s.EnsureDate(ctx, now)
	switch {
	case err == nil:
		view.Schedule = ScheduleOf(res.Row)
		view.Hijri = hijriOf(res.Row)
		view.Location = res.Row.LocationName
		view.Source = res.Source
	case errors.Is(err, ErrUpstreamUnavailable):
		view.Schedule = countdown.DefaultSchedule()
		view.Source = SourceFallback
	default:
		return TodayView{}, err
	}

	next, err := countdown.NextPrayer(view.Schedule, now, policy)
	if err != nil && view.Source != SourceFallback {
		// baris tersimpan tidak bisa dihitung -> perlakukan seperti sumber luar mati
		s.Log.Warn("stored prayer schedule unusable, serving default",
			zap.String("date", view.Date), zap.Error(err))
		view.Schedule = countdown.DefaultSchedule()
		view.Hijri = nil
		view.Location = ""
		view.Source = SourceFallback
		next, err = countdown.NextPrayer(view.Schedule, now, policy)
	}
	if err != nil {
		return TodayView{}, err
	}
	view.Next = next
	return view, nil
}
