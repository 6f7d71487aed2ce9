package helper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "Rp0"},
		{decimal.NewFromInt(1400000), "Rp1.400.000"},
		{decimal.RequireFromString("999.6"), "Rp1.000"},
		{decimal.NewFromInt(-250000), "-Rp250.000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRupiah(tc.in))
	}
}
