package shared

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for currency amounts.
const MoneyPlaces = 2

// RoundMoney rounds an amount to the currency minor unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// SumMoney adds amounts and rounds the result.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return RoundMoney(total)
}
