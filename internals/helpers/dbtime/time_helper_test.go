package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey_UsesLocation(t *testing.T) {
	jkt := LoadLocation("Asia/Jakarta")
	// 2025-03-09 18:30 UTC = 2025-03-10 01:30 WIB
	ts := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", DateKey(ts, jkt))
	assert.Equal(t, "2025-03-09", DateKey(ts, time.UTC))
}

func TestLoadLocation_Fallback(t *testing.T) {
	assert.Equal(t, "Asia/Jakarta", LoadLocation("").String())
	assert.Equal(t, "Asia/Jakarta", LoadLocation("Not/AZone").String())
}

func TestParseTod(t *testing.T) {
	tod, err := ParseTod("04:20")
	require.NoError(t, err)
	assert.Equal(t, 260, tod.MinutesOfDay())
	assert.Equal(t, "04:20", tod.String())

	_, err = ParseTod("25:99")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/03/2025", time.UTC)
	assert.Error(t, err)
}
