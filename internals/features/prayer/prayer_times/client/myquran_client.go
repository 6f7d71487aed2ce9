// Package client berbicara dengan API jadwal sholat & kalender hijriah myQuran v2.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"masjidku_portal/internals/features/prayer/prayer_times/countdown"
	"masjidku_portal/internals/helpers/dbtime"

	"github.com/bytedance/sonic"
)

// ErrUpstreamUnavailable membungkus semua kegagalan sumber luar (jaringan, HTTP, payload rusak).
var ErrUpstreamUnavailable = errors.New("sumber jadwal sholat tidak tersedia")

const (
	schedulePath = "/sholat/jadwal/%s/%04d/%02d/%02d"
	hijriPath    = "/cal/hijr/%s/adj=%d"
	cityPath     = "/sholat/kota/cari/%s"
)

type DaySchedule struct {
	CityCode string
	Location string
	Times    countdown.Schedule
	Raw      []byte
}

type HijriDate struct {
	Day       int
	Month     int
	Year      int
	MonthName string
	DayName   string
	FullDate  string
}

type City struct {
	ID   string `json:"id"`
	Name string `json:"lokasi"`
}

type MyQuranClient struct {
	BaseURL    string
	httpClient *http.Client
}

func NewMyQuranClient(baseURL string, timeout time.Duration) *MyQuranClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MyQuranClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// looseString menerima "1301" maupun 1301.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	*s = looseString(strings.Trim(strings.TrimSpace(string(b)), `"`))
	return nil
}

type scheduleData struct {
	ID     looseString `json:"id"`
	Lokasi string      `json:"lokasi"`
	Daerah string      `json:"daerah"`
	Jadwal struct {
		Tanggal string `json:"tanggal"`
		Imsak   string `json:"imsak"`
		Subuh   string `json:"subuh"`
		Terbit  string `json:"terbit"`
		Dhuha   string `json:"dhuha"`
		Dzuhur  string `json:"dzuhur"`
		Ashar   string `json:"ashar"`
		Maghrib string `json:"maghrib"`
		Isya    string `json:"isya"`
		Date    string `json:"date"`
	} `json:"jadwal"`
}

type hijriData struct {
	Date []string `json:"date"`
	Num  []int    `json:"num"`
}

func (c *MyQuranClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("myquran: gagal membuat request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: gagal membaca respons: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	return body, nil
}

// FetchSchedule mengambil jadwal satu hari untuk kode kota myQuran.
func (c *MyQuranClient) FetchSchedule(ctx context.Context, city string, date time.Time) (DaySchedule, error) {
	path := fmt.Sprintf(schedulePath, url.PathEscape(city), date.Year(), int(date.Month()), date.Day())
	body, err := c.get(ctx, path)
	if err != nil {
		return DaySchedule{}, err
	}

	var env envelope[scheduleData]
	if err := sonic.Unmarshal(body, &env); err != nil {
		return DaySchedule{}, fmt.Errorf("%w: payload jadwal tidak valid: %v", ErrUpstreamUnavailable, err)
	}
	if !env.Status {
		return DaySchedule{}, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, env.Message)
	}

	j := env.Data.Jadwal
	times := countdown.Schedule{
		Imsak: j.Imsak, Subuh: j.Subuh, Terbit: j.Terbit, Dhuha: j.Dhuha,
		Dzuhur: j.Dzuhur, Ashar: j.Ashar, Maghrib: j.Maghrib, Isya: j.Isya,
	}
	for name, v := range map[string]string{
		"imsak": times.Imsak, "subuh": times.Subuh, "dzuhur": times.Dzuhur,
		"ashar": times.Ashar, "maghrib": times.Maghrib, "isya": times.Isya,
	} {
		if strings.TrimSpace(v) == "" {
			return DaySchedule{}, fmt.Errorf("%w: jam %s kosong", ErrUpstreamUnavailable, name)
		}
	}
	// format jam rusak (mis. "04.28") ditolak sebelum sempat tersimpan
	for name, v := range map[string]string{
		"imsak": times.Imsak, "subuh": times.Subuh, "terbit": times.Terbit, "dhuha": times.Dhuha,
		"dzuhur": times.Dzuhur, "ashar": times.Ashar, "maghrib": times.Maghrib, "isya": times.Isya,
	} {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, err := dbtime.ParseTod(v); err != nil {
			return DaySchedule{}, fmt.Errorf("%w: jam %s: %v", ErrUpstreamUnavailable, name, err)
		}
	}

	code := string(env.Data.ID)
	if code == "" {
		code = city
	}
	return DaySchedule{
		CityCode: code,
		Location: strings.TrimSpace(strings.Join(nonEmpty(env.Data.Lokasi, env.Data.Daerah), ", ")),
		Times:    times,
		Raw:      body,
	}, nil
}

// FetchHijri mengambil tanggal hijriah dengan koreksi adj hari.
func (c *MyQuranClient) FetchHijri(ctx context.Context, date time.Time, adj int) (HijriDate, error) {
	body, err := c.get(ctx, fmt.Sprintf(hijriPath, date.Format("2006-01-02"), adj))
	if err != nil {
		return HijriDate{}, err
	}

	var env envelope[hijriData]
	if err := sonic.Unmarshal(body, &env); err != nil {
		return HijriDate{}, fmt.Errorf("%w: payload hijriah tidak valid: %v", ErrUpstreamUnavailable, err)
	}
	if !env.Status || len(env.Data.Date) < 2 || len(env.Data.Num) < 4 {
		return HijriDate{}, fmt.Errorf("%w: payload hijriah tidak lengkap", ErrUpstreamUnavailable)
	}

	full := strings.TrimSpace(env.Data.Date[1])
	return HijriDate{
		Day:       env.Data.Num[1],
		Month:     env.Data.Num[2],
		Year:      env.Data.Num[3],
		MonthName: hijriMonthName(full),
		DayName:   strings.TrimSpace(env.Data.Date[0]),
		FullDate:  full,
	}, nil
}

// SearchCities: kata kunci tanpa hasil -> slice kosong.
func (c *MyQuranClient) SearchCities(ctx context.Context, keyword string) ([]City, error) {
	body, err := c.get(ctx, fmt.Sprintf(cityPath, url.PathEscape(strings.TrimSpace(keyword))))
	if err != nil {
		return nil, err
	}
	var env envelope[[]City]
	if err := sonic.Unmarshal(body, &env); err != nil {
		// myQuran mengirim data bukan array saat tidak ada hasil
		var miss envelope[any]
		if sonic.Unmarshal(body, &miss) == nil && !miss.Status {
			return []City{}, nil
		}
		return nil, fmt.Errorf("%w: payload kota tidak valid: %v", ErrUpstreamUnavailable, err)
	}
	if !env.Status || env.Data == nil {
		return []City{}, nil
	}
	return env.Data, nil
}

// hijriMonthName: "10 Rabiul Awal 1446 H" -> "Rabiul Awal".
func hijriMonthName(full string) string {
	fields := strings.Fields(full)
	if len(fields) < 3 {
		return ""
	}
	var name []string
	for _, f := range fields[1:] {
		if _, err := strconv.Atoi(f); err == nil {
			break
		}
		name = append(name, f)
	}
	return strings.Join(name, " ")
}

func nonEmpty(vals ...string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
