package domain

import "github.com/shopspring/decimal"

// SavingsReport summarizes how much the assignment saves against each item's
// average in-stock price. VsAveragePrice always equals Total.
type SavingsReport struct {
	Total          decimal.Decimal
	VsAveragePrice decimal.Decimal
	PerStore       map[string]decimal.Decimal
}
