// Package countdown menghitung sholat berikutnya dan sisa waktunya dari jam dinding.
// Tidak ada state: setiap hitungan diturunkan ulang dari waktu sekarang.
package countdown

import (
	"context"
	"fmt"
	"time"

	"masjidku_portal/internals/helpers/dbtime"
)

const minutesPerDay = 24 * 60

// Schedule berisi jam "HH:MM" satu hari.
type Schedule struct {
	Imsak   string `json:"imsak"`
	Subuh   string `json:"subuh"`
	Terbit  string `json:"terbit"`
	Dhuha   string `json:"dhuha"`
	Dzuhur  string `json:"dzuhur"`
	Ashar   string `json:"ashar"`
	Maghrib string `json:"maghrib"`
	Isya    string `json:"isya"`
}

// Policy: Imsak ikut dihitung sebagai "sholat berikutnya" atau tidak.
type Policy struct {
	IncludeImsak bool
}

type Next struct {
	Name    string `json:"name"`
	Time    string `json:"time"`
	NextDay bool   `json:"next_day"` // target sudah lewat tengah malam (setelah Isya)
	Seconds int64  `json:"seconds"`
	Label   string `json:"label"`
}

type entry struct {
	name    string
	at      string
	minutes int
}

func (s Schedule) entries(p Policy) ([]entry, error) {
	pairs := [][2]string{
		{"Imsak", s.Imsak},
		{"Subuh", s.Subuh},
		{"Dzuhur", s.Dzuhur},
		{"Ashar", s.Ashar},
		{"Maghrib", s.Maghrib},
		{"Isya", s.Isya},
	}
	if !p.IncludeImsak {
		pairs = pairs[1:]
	}
	out := make([]entry, 0, len(pairs))
	for _, pr := range pairs {
		tod, err := dbtime.ParseTod(pr[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pr[0], err)
		}
		out = append(out, entry{name: pr[0], at: tod.String(), minutes: tod.MinutesOfDay()})
	}
	return out, nil
}

// NextPrayer: entri pertama (urutan hari) yang menit-nya > sekarang.
// Setelah entri terakhir, bungkus ke entri pertama hari berikutnya.
// now harus sudah dalam zona waktu jadwal.
func NextPrayer(s Schedule, now time.Time, p Policy) (Next, error) {
	list, err := s.entries(p)
	if err != nil {
		return Next{}, err
	}

	nowMin := now.Hour()*60 + now.Minute()
	nowSec := now.Second()

	target := list[0]
	delta := (minutesPerDay - nowMin) + target.minutes
	nextDay := true
	for _, e := range list {
		if e.minutes > nowMin {
			target = e
			delta = e.minutes - nowMin
			nextDay = false
			break
		}
	}

	secs := int64(delta*60 - nowSec)
	if secs < 0 {
		secs = 0
	}
	return Next{
		Name:    target.name,
		Time:    target.at,
		NextDay: nextDay,
		Seconds: secs,
		Label:   Format(secs),
	}, nil
}

// Format: 16200 -> "04:30:00".
func Format(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// Stream memanggil emit segera lalu setiap interval, sampai ctx selesai atau emit gagal.
func Stream(ctx context.Context, clock dbtime.Clock, loc *time.Location, s Schedule, p Policy, interval time.Duration, emit func(Next) error) error {
	if interval <= 0 {
		interval = time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	send := func() error {
		n, err := NextPrayer(s, clock().In(loc), p)
		if err != nil {
			return err
		}
		return emit(n)
	}

	if err := send(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := send(); err != nil {
				return err
			}
		}
	}
}

// DefaultSchedule dipakai bila jadwal hari ini belum ada dan sumber luar gagal.
func DefaultSchedule() Schedule {
	return Schedule{
		Imsak:   "04:20",
		Subuh:   "04:30",
		Terbit:  "05:45",
		Dhuha:   "06:15",
		Dzuhur:  "11:55",
		Ashar:   "15:15",
		Maghrib: "18:00",
		Isya:    "19:15",
	}
}
