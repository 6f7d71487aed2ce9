package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/client"
	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/features/prayer/prayer_times/model"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	scheduleCalls atomic.Int32
	hijriCalls    atomic.Int32

	scheduleErr error
	hijriErr    error
	// gate menahan FetchSchedule sampai ditutup (uji singleflight)
	gate chan struct{}

	mu       sync.Mutex
	lastCity string
}

func (f *fakeSource) FetchSchedule(ctx context.Context, city string, date time.Time) (client.DaySchedule, error) {
	f.scheduleCalls.Add(1)
	f.mu.Lock()
	f.lastCity = city
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.scheduleErr != nil {
		return client.DaySchedule{}, f.scheduleErr
	}
	return client.DaySchedule{
		CityCode: city,
		Location: "KOTA JAKARTA",
		Times: countdown.Schedule{
			Imsak: "04:28", Subuh: "04:38", Terbit: "05:52", Dhuha: "06:20",
			Dzuhur: "12:01", Ashar: "15:10", Maghrib: "18:06", Isya: "19:15",
		},
		Raw: []byte(`{"tanggal":"` + date.Format("2006-01-02") + `"}`),
	}, nil
}

func (f *fakeSource) FetchHijri(ctx context.Context, date time.Time, adj int) (client.HijriDate, error) {
	f.hijriCalls.Add(1)
	if f.hijriErr != nil {
		return client.HijriDate{}, f.hijriErr
	}
	return client.HijriDate{
		Day: 19, Month: 9, Year: 1446,
		MonthName: "Ramadhan", DayName: "Kamis", FullDate: "19 Ramadhan 1446 H",
	}, nil
}

func (f *fakeSource) SearchCities(ctx context.Context, keyword string) ([]client.City, error) {
	return []client.City{{ID: "1301", Name: "KOTA JAKARTA"}}, nil
}

func newSyncFixture(t *testing.T, src *fakeSource) (*SyncService, *time.Location) {
	t.Helper()
	db := testdb.Open(t, &model.DailyPrayerTimeModel{}, &model.PrayerTimeSettingModel{})
	jkt, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	svc := NewSyncService(db, src, jkt, Defaults{CityCode: "1301", HijriAdjustment: -1, IncludeImsak: true}, zap.NewNop())
	svc.Now = func() time.Time { return time.Date(2025, 3, 20, 23, 50, 0, 0, jkt) }
	return svc, jkt
}

func TestEnsureDate_FetchesOnceThenServesCache(t *testing.T) {
	src := &fakeSource{}
	svc, jkt := newSyncFixture(t, src)
	ctx := context.Background()
	day := time.Date(2025, 3, 20, 9, 0, 0, 0, jkt)

	first, err := svc.EnsureDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, SourceUpstream, first.Source)
	assert.Equal(t, "2025-03-20", first.Row.PrayerDate)
	assert.Equal(t, "04:38", first.Row.Subuh)
	require.NotNil(t, first.Row.HijriDay)
	assert.Equal(t, 19, *first.Row.HijriDay)
	assert.Equal(t, "Ramadhan", first.Row.HijriMonthName)

	second, err := svc.EnsureDate(ctx, day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.Row.ID, second.Row.ID)
	assert.EqualValues(t, 1, src.scheduleCalls.Load())
}

func TestEnsureDate_ConcurrentCallersShareOneFetch(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	svc, jkt := newSyncFixture(t, src)
	day := time.Date(2025, 3, 21, 0, 0, 0, 0, jkt)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]Result, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.EnsureDate(context.Background(), day)
		}(i)
	}

	require.Eventually(t, func() bool { return src.scheduleCalls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	// beri waktu pemanggil lain bergabung ke flight yang sama
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "2025-03-21", results[i].Row.PrayerDate)
	}
	assert.EqualValues(t, 1, src.scheduleCalls.Load())

	var count int64
	require.NoError(t, svc.DB.Model(&model.DailyPrayerTimeModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureDate_HijriFailureStillStoresSchedule(t *testing.T) {
	src := &fakeSource{hijriErr: errors.New("hijri down")}
	svc, jkt := newSyncFixture(t, src)

	res, err := svc.EnsureDate(context.Background(), time.Date(2025, 3, 20, 0, 0, 0, 0, jkt))
	require.NoError(t, err)
	assert.Equal(t, "12:01", res.Row.Dzuhur)
	assert.Nil(t, res.Row.HijriDay)
	assert.Empty(t, res.Row.HijriFullDate)
}

func TestEnsureDate_UpstreamFailure(t *testing.T) {
	src := &fakeSource{scheduleErr: errors.New("connection refused")}
	svc, jkt := newSyncFixture(t, src)

	_, err := svc.EnsureDate(context.Background(), time.Date(2025, 3, 20, 0, 0, 0, 0, jkt))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	row, err := svc.Lookup(context.Background(), "2025-03-20")
	require.NoError(t, err)
	assert.Nil(t, row, "nothing cached on failure")
}

func TestSync_OverwritesExistingRow(t *testing.T) {
	src := &fakeSource{}
	svc, jkt := newSyncFixture(t, src)
	ctx := context.Background()
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, jkt)

	first, err := svc.EnsureDate(ctx, day)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Model(&model.DailyPrayerTimeModel{}).
		Where("prayer_date = ?", "2025-03-20").Update("subuh", "00:00").Error)

	synced, err := svc.Sync(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "04:38", synced.Subuh)
	assert.Equal(t, first.Row.ID, synced.ID, "upsert keeps the row identity")
	assert.EqualValues(t, 2, src.scheduleCalls.Load())
}

func TestFetchSetting_DefaultsThenSaved(t *testing.T) {
	src := &fakeSource{}
	svc, jkt := newSyncFixture(t, src)
	ctx := context.Background()

	s, err := svc.FetchSetting(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1301", s.CityCode)
	assert.Equal(t, -1, s.HijriAdjustment)
	assert.True(t, s.IncludeImsakInCountdown)

	_, err = svc.SaveSetting(ctx, model.PrayerTimeSettingModel{CityCode: " 1609 ", CityName: "KOTA MALANG"})
	require.NoError(t, err)

	s, err = svc.FetchSetting(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1609", s.CityCode)
	assert.False(t, s.IncludeImsakInCountdown)

	_, err = svc.Sync(ctx, time.Date(2025, 3, 22, 0, 0, 0, 0, jkt))
	require.NoError(t, err)
	src.mu.Lock()
	assert.Equal(t, "1609", src.lastCity)
	src.mu.Unlock()
}

func TestTodayView_CountdownAcrossMidnight(t *testing.T) {
	src := &fakeSource{}
	svc, _ := newSyncFixture(t, src)

	view, err := svc.TodayView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", view.Date)
	assert.Equal(t, SourceUpstream, view.Source)
	require.NotNil(t, view.Hijri)
	assert.Equal(t, "19 Ramadhan 1446 H", view.Hijri.FullDate)

	// 23:50 -> Imsak 04:28 besok
	assert.Equal(t, "Imsak", view.Next.Name)
	assert.True(t, view.Next.NextDay)
	assert.EqualValues(t, (10+4*60+28)*60, view.Next.Seconds)
}

func TestTodayView_FallbackWhenUpstreamDown(t *testing.T) {
	src := &fakeSource{scheduleErr: client.ErrUpstreamUnavailable}
	svc, _ := newSyncFixture(t, src)

	view, err := svc.TodayView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, view.Source)
	assert.Equal(t, countdown.DefaultSchedule(), view.Schedule)
	assert.Nil(t, view.Hijri)
	assert.Equal(t, "04:30:00", view.Next.Label)
}

func TestSync_HijriOutageKeepsStoredLabels(t *testing.T) {
	src := &fakeSource{}
	svc, jkt := newSyncFixture(t, src)
	ctx := context.Background()
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, jkt)

	_, err := svc.EnsureDate(ctx, day)
	require.NoError(t, err)

	src.hijriErr = errors.New("hijri down")
	synced, err := svc.Sync(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "04:38", synced.Subuh)
	require.NotNil(t, synced.HijriDay)
	assert.Equal(t, 19, *synced.HijriDay)
	assert.Equal(t, "Ramadhan", synced.HijriMonthName)
	assert.Equal(t, "19 Ramadhan 1446 H", synced.HijriFullDate)
	assert.EqualValues(t, 2, src.hijriCalls.Load())
}

func TestSync_SameResponseLeavesRowUnchanged(t *testing.T) {
	src := &fakeSource{}
	svc, jkt := newSyncFixture(t, src)
	ctx := context.Background()
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, jkt)

	first, err := svc.Sync(ctx, day)
	require.NoError(t, err)
	second, err := svc.Sync(ctx, day)
	require.NoError(t, err)

	// hanya fetched_at & updated_at yang boleh bergeser
	first.FetchedAt, second.FetchedAt = time.Time{}, time.Time{}
	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	first.CreatedAt, second.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PrayerDate, second.PrayerDate)
	assert.Equal(t, ScheduleOf(first), ScheduleOf(second))
	assert.Equal(t, first.HijriDay, second.HijriDay)
	assert.Equal(t, first.HijriFullDate, second.HijriFullDate)
	assert.Equal(t, first.CityCode, second.CityCode)
	assert.Equal(t, first.LocationName, second.LocationName)
	assert.JSONEq(t, string(first.RawPayload), string(second.RawPayload))

	var count int64
	require.NoError(t, svc.DB.Model(&model.DailyPrayerTimeModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTodayView_MalformedStoredRowFallsBack(t *testing.T) {
	src := &fakeSource{}
	svc, _ := newSyncFixture(t, src)

	require.NoError(t, svc.DB.Create(&model.DailyPrayerTimeModel{
		PrayerDate:    "2025-03-20",
		Imsak:         "04.28",
		Subuh:         "04:38",
		Dzuhur:        "12:01",
		Ashar:         "15:10",
		Maghrib:       "18:06",
		Isya:          "19:15",
		CityCode:      "1301",
		LocationName:  "KOTA JAKARTA",
		HijriFullDate: "19 Ramadhan 1446 H",
		FetchedAt:     time.Now().UTC(),
	}).Error)

	view, err := svc.TodayView(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, view.Source)
	assert.Equal(t, countdown.DefaultSchedule(), view.Schedule)
	assert.Nil(t, view.Hijri)
	assert.Empty(t, view.Location)
	assert.Equal(t, "Imsak", view.Next.Name)
	assert.True(t, view.Next.NextDay)
	assert.EqualValues(t, 0, src.scheduleCalls.Load(), "row served from cache, no refetch")
}
