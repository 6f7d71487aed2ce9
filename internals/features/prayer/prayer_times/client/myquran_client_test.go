package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleBody = `{
  "status": true,
  "data": {
    "id": "1301",
    "lokasi": "KOTA JAKARTA",
    "daerah": "DKI JAKARTA",
    "jadwal": {
      "tanggal": "Senin, 10/03/2025",
      "imsak": "04:28", "subuh": "04:38", "terbit": "05:53", "dhuha": "06:22",
      "dzuhur": "12:07", "ashar": "15:13", "maghrib": "18:14", "isya": "19:23",
      "date": "2025-03-10"
    }
  }
}`

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSchedule(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/sholat/jadwal/1301/2025/03/10": scheduleBody})
	c := NewMyQuranClient(srv.URL+"/", time.Second)

	got, err := c.FetchSchedule(context.Background(), "1301", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "1301", got.CityCode)
	assert.Equal(t, "KOTA JAKARTA, DKI JAKARTA", got.Location)
	assert.Equal(t, "04:28", got.Times.Imsak)
	assert.Equal(t, "19:23", got.Times.Isya)
	assert.Contains(t, string(got.Raw), "KOTA JAKARTA")
}

func TestFetchSchedule_UpstreamErrors(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/sholat/jadwal/9999/2025/03/10": `{"status": false, "message": "kota tidak ditemukan"}`,
		"/sholat/jadwal/1302/2025/03/10": `{"status": true, "data": {"id": 1302, "jadwal": {"imsak": "04:28"}}}`,
		"/sholat/jadwal/1303/2025/03/10": `<html>bad gateway</html>`,
	})
	c := NewMyQuranClient(srv.URL, time.Second)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, city := range []string{"9999", "1302", "1303", "404"} {
		_, err := c.FetchSchedule(context.Background(), city, day)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable, city)
	}
}

func TestFetchSchedule_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewMyQuranClient(srv.URL, 5*time.Second).FetchSchedule(ctx, "1301", time.Now())
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchHijri(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/cal/hijr/2024-09-14/adj=-1": `{"status": true, "data": {"date": ["Sabtu", "10 Rabiul Awal 1446 H", "10-03-1446"], "num": [6, 10, 3, 1446, 14, 9, 2024]}}`,
	})
	c := NewMyQuranClient(srv.URL, time.Second)

	h, err := c.FetchHijri(context.Background(), time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), -1)
	require.NoError(t, err)
	assert.Equal(t, 10, h.Day)
	assert.Equal(t, 3, h.Month)
	assert.Equal(t, 1446, h.Year)
	assert.Equal(t, "Rabiul Awal", h.MonthName)
	assert.Equal(t, "Sabtu", h.DayName)
	assert.Equal(t, "10 Rabiul Awal 1446 H", h.FullDate)
}

func TestSearchCities(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/sholat/kota/cari/bandung": `{"status": true, "data": [{"id": "1219", "lokasi": "KAB. BANDUNG"}, {"id": "1301", "lokasi": "KOTA BANDUNG"}]}`,
		"/sholat/kota/cari/zzz":     `{"status": false, "message": "tidak ditemukan", "data": {}}`,
	})
	c := NewMyQuranClient(srv.URL, time.Second)

	cities, err := c.SearchCities(context.Background(), "bandung")
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "KOTA BANDUNG", cities[1].Name)

	none, err := c.SearchCities(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHijriMonthName(t *testing.T) {
	assert.Equal(t, "Ramadhan", hijriMonthName("1 Ramadhan 1446 H"))
	assert.Equal(t, "Jumadil Akhir", hijriMonthName("5 Jumadil Akhir 1446 H"))
	assert.Equal(t, "", hijriMonthName("garbage"))
}

func TestFetchSchedule_RejectsMalformedTimes(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/sholat/jadwal/1301/2025/03/10": `{"status": true, "data": {"id": "1301", "lokasi": "KOTA JAKARTA", "jadwal": {
			"imsak": "04.28", "subuh": "04:38", "dzuhur": "12:07", "ashar": "15:13", "maghrib": "18:14", "isya": "19:23"}}}`,
		"/sholat/jadwal/1302/2025/03/10": `{"status": true, "data": {"id": "1302", "jadwal": {
			"imsak": "04:28", "subuh": "04:38", "dhuha": "jam 6", "dzuhur": "12:07", "ashar": "15:13", "maghrib": "18:14", "isya": "19:23"}}}`,
		"/sholat/jadwal/1303/2025/03/10": `{"status": true, "data": {"id": "1303", "jadwal": {
			"imsak": "04:28", "subuh": "04:38", "dzuhur": "12:07", "ashar": "15:13", "maghrib": "25:14", "isya": "19:23"}}}`,
	})
	c := NewMyQuranClient(srv.URL, time.Second)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, city := range []string{"1301", "1302", "1303"} {
		_, err := c.FetchSchedule(context.Background(), city, day)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable, city)
	}
}
