package dto

import (
	"masjidku_portal/internals/features/finance/ledger/model"
	helper "masjidku_portal/internals/helpers"
)

type SummaryQuery struct {
	Month  int    `query:"month" validate:"omitempty,min=1,max=12"`
	Year   int    `query:"year" validate:"omitempty,min=2000,max=2100"`
	FundID string `query:"fund_id" validate:"omitempty,uuid"`
}

// SummaryLabels = angka utama yang sudah diformat Rupiah untuk tampilan.
type SummaryLabels struct {
	PeriodIncome   string `json:"period_income"`
	PeriodExpense  string `json:"period_expense"`
	PeriodBalance  string `json:"period_balance"`
	AllTimeBalance string `json:"all_time_balance"`
}

type SummaryResponse struct {
	model.Summary
	Labels SummaryLabels `json:"labels"`
}

func ToSummaryResponse(s model.Summary) SummaryResponse {
	return SummaryResponse{
		Summary: s,
		Labels: SummaryLabels{
			PeriodIncome:   helper.FormatRupiah(s.Period.Income),
			PeriodExpense:  helper.FormatRupiah(s.Period.Expense),
			PeriodBalance:  helper.FormatRupiah(s.Period.Balance),
			AllTimeBalance: helper.FormatRupiah(s.AllTime.Balance),
		},
	}
}
