package dto

import (
	"testing"
	"time"

	"masjidku_portal/internals/features/finance/transactions/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublicFinance_MasksAnonymousDonor(t *testing.T) {
	name := "Budi"
	m := model.FinanceModel{
		FinanceType:        model.FinanceIncome,
		FinanceAmount:      decimal.NewFromInt(50000),
		FinanceDate:        model.CalendarDate(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)),
		FinanceDonorName:   &name,
		FinanceIsAnonymous: true,
	}

	out := ToPublicFinance(m, "Rp50.000")
	require.NotNil(t, out.FinanceDonorName)
	assert.Equal(t, AnonymousDonorName, *out.FinanceDonorName)
	assert.Equal(t, "2025-03-07", out.FinanceDate)
	assert.Equal(t, "Rp50.000", out.FinanceAmountLabel)

	m.FinanceIsAnonymous = false
	out = ToPublicFinance(m, "")
	assert.Equal(t, "Budi", *out.FinanceDonorName)
}
