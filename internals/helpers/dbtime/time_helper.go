// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Clock dipakai service agar "sekarang" bisa diganti di test.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

// LoadLocation: nama zona kosong/invalid -> Asia/Jakarta -> UTC.
func LoadLocation(name string) *time.Location {
	if s := strings.TrimSpace(name); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// DateKey: tanggal kalender t di zona loc, format YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDate membaca "YYYY-MM-DD" sebagai tengah malam di loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("format tanggal harus YYYY-MM-DD: %w", err)
	}
	return t, nil
}
