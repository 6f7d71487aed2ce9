// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Tod = time-of-day "HH:MM[:SS]" tanpa tanggal & zona.
type Tod struct{ time.Time }

func ParseTod(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return Tod{}, fmt.Errorf("jam tidak valid %q: %w", s, err)
	}
	return Tod{Time: tt}, nil
}

// MinutesOfDay: "04:20" -> 260.
func (t Tod) MinutesOfDay() int {
	return t.Hour()*60 + t.Minute()
}

func (t Tod) String() string {
	return t.Format("15:04")
}
