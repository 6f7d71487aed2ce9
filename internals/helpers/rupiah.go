package helper

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah: 1400000 -> "Rp1.400.000" (tanpa sen, dibulatkan).
func FormatRupiah(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return "-Rp" + idPrinter.Sprintf("%d", -n)
	}
	return "Rp" + idPrinter.Sprintf("%d", n)
}
