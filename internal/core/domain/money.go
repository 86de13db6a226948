package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits money is stored with.
const MoneyScale = 2

// MaxMoney is the exclusive upper bound of a stored amount (NUMERIC(14,2)).
var MaxMoney = decimal.New(1, 12)

// FitsMoney reports whether d can be stored without rounding or overflow.
func FitsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale)) && d.Abs().LessThan(MaxMoney)
}
