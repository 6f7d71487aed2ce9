package service

import (
	"fmt"
	"sort"
	"time"

	fundModel "masjidku_portal/internals/features/finance/funds/model"
	"masjidku_portal/internals/features/finance/ledger/model"
	financeModel "masjidku_portal/internals/features/finance/transactions/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AggregateInput struct {
	// Funds diurutkan sesuai tampilan (repository: nama ASC).
	Funds          []model.FundInfo
	PeriodSums     []model.FundTypeSum
	AllTimeSums    []model.FundTypeSum
	OpeningBalance decimal.Decimal
	// FundFilter membatasi ringkasan ke satu dana.
	FundFilter *uuid.UUID
}

// PeriodWindow: [tgl 1 00:00:00, tgl terakhir 23:59:59] di loc.
// Bulan 0 / 13 ikut aturan time.Date (mundur/maju tahun).
func PeriodWindow(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// OpeningBalanceFund: dana OPERASIONAL aktif pertama menurut nama.
func OpeningBalanceFund(funds []model.FundInfo) *model.FundInfo {
	var candidates []model.FundInfo
	for _, f := range funds {
		if f.IsActive && f.Type == fundModel.FundTypeOperasional {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Name != candidates[j].Name {
			return candidates[i].Name < candidates[j].Name
		}
		return candidates[i].ID.String() < candidates[j].ID.String()
	})
	return &candidates[0]
}

// OperationalRollup menjumlahkan semua dana bertipe OPERASIONAL (tampilan lama satu-kas).
func OperationalRollup(funds []model.FundBalance) model.Totals {
	out := zeroTotals()
	for _, f := range funds {
		if f.FundType != fundModel.FundTypeOperasional {
			continue
		}
		out.Income = out.Income.Add(f.Income)
		out.Expense = out.Expense.Add(f.Expense)
		out.Balance = out.Balance.Add(f.Balance)
	}
	return out
}

// Aggregate menyusun ringkasan periode & sepanjang waktu dari hasil GROUP BY.
// Saldo awal hanya masuk ke saldo all-time satu dana (OpeningBalanceFund).
func Aggregate(in AggregateInput) (model.Summary, error) {
	funds := in.Funds
	if in.FundFilter != nil {
		funds = nil
		for _, f := range in.Funds {
			if f.ID == *in.FundFilter {
				funds = append(funds, f)
			}
		}
	}

	var openingID *uuid.UUID
	if of := OpeningBalanceFund(in.Funds); of != nil {
		id := of.ID
		openingID = &id
	}

	// saldo awal ikut total flat kecuali ringkasan difilter ke dana lain
	openingInScope := in.FundFilter == nil || (openingID != nil && *in.FundFilter == *openingID)

	period, err := buildBlock(funds, in.PeriodSums, nil, decimal.Zero, false)
	if err != nil {
		return model.Summary{}, fmt.Errorf("periode: %w", err)
	}
	allTime, err := buildBlock(funds, in.AllTimeSums, openingID, in.OpeningBalance, openingInScope)
	if err != nil {
		return model.Summary{}, fmt.Errorf("all-time: %w", err)
	}

	return model.Summary{
		FundID:               in.FundFilter,
		Period:               period,
		AllTime:              allTime,
		OpeningBalance:       in.OpeningBalance,
		OpeningBalanceFundID: openingID,
	}, nil
}

func buildBlock(
	funds []model.FundInfo,
	sums []model.FundTypeSum,
	openingID *uuid.UUID,
	opening decimal.Decimal,
	openingInScope bool,
) (model.Block, error) {
	entries := make([]model.FundBalance, 0, len(funds))
	index := make(map[uuid.UUID]int, len(funds))
	for _, f := range funds {
		id := f.ID
		index[id] = len(entries)
		entries = append(entries, model.FundBalance{
			FundID:       &id,
			FundName:     f.Name,
			FundType:     f.Type,
			IsRestricted: f.IsRestricted,
			IsActive:     f.IsActive,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
			Balance:      decimal.Zero,
		})
	}

	// transaksi tanpa dana / dana terhapus -> entri "Unknown" per id
	unknownIndex := map[string]int{}
	entryFor := func(fundID *uuid.UUID) int {
		if fundID != nil {
			if i, ok := index[*fundID]; ok {
				return i
			}
		}
		key := ""
		if fundID != nil {
			key = fundID.String()
		}
		if i, ok := unknownIndex[key]; ok {
			return i
		}
		var idCopy *uuid.UUID
		if fundID != nil {
			id := *fundID
			idCopy = &id
		}
		unknownIndex[key] = len(entries)
		entries = append(entries, model.FundBalance{
			FundID:   idCopy,
			FundName: model.UnknownFundName,
			Income:   decimal.Zero,
			Expense:  decimal.Zero,
			Balance:  decimal.Zero,
		})
		return len(entries) - 1
	}

	block := model.Block{Totals: zeroTotals()}
	for _, s := range sums {
		i := entryFor(s.FundID)
		switch s.Type {
		case financeModel.FinanceIncome:
			entries[i].Income = entries[i].Income.Add(s.Total)
			block.Income = block.Income.Add(s.Total)
		case financeModel.FinanceExpense:
			entries[i].Expense = entries[i].Expense.Add(s.Total)
			block.Expense = block.Expense.Add(s.Total)
		default:
			return model.Block{}, fmt.Errorf("tipe transaksi tidak dikenal %q", s.Type)
		}
	}

	known := len(funds)
	for i := range entries {
		entries[i].Balance = entries[i].Income.Sub(entries[i].Expense)
		if i < known && openingID != nil && *entries[i].FundID == *openingID {
			entries[i].Balance = entries[i].Balance.Add(opening)
			entries[i].IncludesOpeningBalance = true
		}
	}

	block.Balance = block.Income.Sub(block.Expense)
	if openingInScope {
		block.Balance = block.Balance.Add(opening)
	}
	block.Funds = entries
	block.Operational = OperationalRollup(entries)
	return block, nil
}

func zeroTotals() model.Totals {
	return model.Totals{Income: decimal.Zero, Expense: decimal.Zero, Balance: decimal.Zero}
}
