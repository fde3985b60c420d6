package services

import (
	"shopping-route-service/internal/domain"

	"github.com/shopspring/decimal"
)

// CalculateSavings compares each assigned item's price with the mean of its
// in-stock prices across stores. Savings may be negative when a pricier store
// wins on other criteria. Items without an in-stock score or an assignment
// contribute nothing.
func CalculateSavings(items []*domain.OptimizedItem) domain.SavingsReport {
	report := domain.SavingsReport{
		Total:          decimal.Zero,
		VsAveragePrice: decimal.Zero,
		PerStore:       make(map[string]decimal.Decimal),
	}

	for _, it := range items {
		if !it.IsAssigned() {
			continue
		}
		prices := it.InStockPrices()
		if len(prices) == 0 {
			continue
		}

		avg := decimal.Avg(prices[0], prices[1:]...)
		saving := avg.Sub(it.AssignedPrice)

		report.Total = report.Total.Add(saving)
		report.PerStore[it.AssignedStoreID] = report.PerStore[it.AssignedStoreID].Add(saving)
	}

	report.VsAveragePrice = report.Total
	return report
}
