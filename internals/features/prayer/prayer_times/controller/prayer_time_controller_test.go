package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/client"
	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/features/prayer/prayer_times/model"
	"masjidku_portal/internals/features/prayer/prayer_times/service"
	helper "masjidku_portal/internals/helpers"
	"masjidku_portal/internals/helpers/testdb"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedSource struct {
	down bool
}

func (s *scriptedSource) FetchSchedule(ctx context.Context, city string, date time.Time) (client.DaySchedule, error) {
	if s.down {
		return client.DaySchedule{}, client.ErrUpstreamUnavailable
	}
	return client.DaySchedule{CityCode: city, Location: "KOTA JAKARTA", Times: countdown.DefaultSchedule(), Raw: []byte(`{}`)}, nil
}

func (s *scriptedSource) FetchHijri(ctx context.Context, date time.Time, adj int) (client.HijriDate, error) {
	return client.HijriDate{}, client.ErrUpstreamUnavailable
}

func (s *scriptedSource) SearchCities(ctx context.Context, keyword string) ([]client.City, error) {
	if s.down {
		return nil, client.ErrUpstreamUnavailable
	}
	return []client.City{{ID: "1301", Name: "KOTA JAKARTA"}}, nil
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func newApp(t *testing.T, src *scriptedSource) *fiber.App {
	t.Helper()
	db := testdb.Open(t, &model.DailyPrayerTimeModel{}, &model.PrayerTimeSettingModel{})
	jkt, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	svc := service.NewSyncService(db, src, jkt, service.Defaults{CityCode: "1301", IncludeImsak: true}, zap.NewNop())
	svc.Now = func() time.Time { return time.Date(2025, 3, 20, 23, 50, 0, 0, jkt) }

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(zap.NewNop())})
	ctrl := NewPrayerTimeController(svc, zap.NewNop())
	app.Get("/prayer-times/today", ctrl.Today)
	app.Get("/prayer-times/cities", ctrl.Cities)
	app.Get("/prayer-times/:date", ctrl.ByDate)
	app.Post("/prayer-times/sync", ctrl.Sync)
	app.Put("/prayer-times/settings", ctrl.UpdateSettings)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, sonic.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestToday_FallbackWhenUpstreamDown(t *testing.T) {
	app := newApp(t, &scriptedSource{down: true})

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/today", nil))
	assert.Equal(t, http.StatusOK, status)

	var view struct {
		Source string         `json:"source"`
		Next   countdown.Next `json:"next"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &view))
	assert.Equal(t, service.SourceFallback, view.Source)
	assert.Equal(t, "Imsak", view.Next.Name)
	assert.Equal(t, "04:30:00", view.Next.Label)
}

func TestByDate_NotCachedIs404(t *testing.T) {
	app := newApp(t, &scriptedSource{})

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/2025-03-21", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/21-03-2025", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSync_ThenByDate(t *testing.T) {
	app := newApp(t, &scriptedSource{})

	status, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/prayer-times/sync?date=2025-03-21", nil))
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/2025-03-21", nil))
	require.Equal(t, http.StatusOK, status)

	var got struct {
		PrayerDate string             `json:"prayer_date"`
		Schedule   countdown.Schedule `json:"schedule"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &got))
	assert.Equal(t, "2025-03-21", got.PrayerDate)
	assert.Equal(t, "04:30", got.Schedule.Subuh)
}

func TestSync_UpstreamDownIs502(t *testing.T) {
	app := newApp(t, &scriptedSource{down: true})

	status, env := do(t, app, httptest.NewRequest(http.MethodPost, "/prayer-times/sync", nil))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "UPSTREAM_ERROR", env.ErrorCode)
}

func TestUpdateSettings_Validation(t *testing.T) {
	app := newApp(t, &scriptedSource{})

	req := httptest.NewRequest(http.MethodPut, "/prayer-times/settings", strings.NewReader(`{"city_code":"","hijri_adjustment":5}`))
	req.Header.Set("Content-Type", "application/json")
	status, env := do(t, app, req)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	req = httptest.NewRequest(http.MethodPut, "/prayer-times/settings", strings.NewReader(`{"city_code":"1609","city_name":"KOTA MALANG","hijri_adjustment":-1,"include_imsak_in_countdown":false}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ = do(t, app, req)
	assert.Equal(t, http.StatusOK, status)
}

func TestCities_ShortKeyword(t *testing.T) {
	app := newApp(t, &scriptedSource{})

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/cities?q=ja", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/prayer-times/cities?q=jakarta", nil))
	assert.Equal(t, http.StatusOK, status)
}
