package services

import (
	"shopping-route-service/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func score(p string, ps, ds, qs, ts float64) domain.StoreItemScore {
	return domain.StoreItemScore{
		Price:         price(p),
		PriceScore:    ps,
		DistanceScore: ds,
		QualityScore:  qs,
		TimeScore:     ts,
		InStock:       true,
		UpdatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func outOfStock(s domain.StoreItemScore) domain.StoreItemScore {
	s.InStock = false
	return s
}

// testStores lie on a line east of the origin: A at 0.01, B at 0.02, C at 0.03 degrees.
func testStores() []domain.Store {
	return []domain.Store{
		{ID: "A", Name: "Aldi", EstimatedMinutes: 20, Location: domain.Coordinates{Lat: 0, Lon: 0.01}},
		{ID: "B", Name: "Bashas", EstimatedMinutes: 15, Location: domain.Coordinates{Lat: 0, Lon: 0.02}},
		{ID: "C", Name: "Costco", EstimatedMinutes: 30, Location: domain.Coordinates{Lat: 0, Lon: 0.03}},
	}
}

// testItems: A is cheapest for milk, B for bread, C has the best quality for steak.
func testItems() []*domain.OptimizedItem {
	return []*domain.OptimizedItem{
		{
			ID: "milk", Name: "Milk", Category: "dairy", Quantity: 1, Unit: "gal",
			Scores: map[string]domain.StoreItemScore{
				"A": score("2.99", 90, 80, 50, 60),
				"B": score("3.49", 70, 70, 60, 60),
				"C": score("3.99", 50, 40, 80, 40),
			},
		},
		{
			ID: "bread", Name: "Bread", Category: "bakery", Quantity: 1, Unit: "loaf",
			Scores: map[string]domain.StoreItemScore{
				"A": score("3.00", 60, 80, 50, 60),
				"B": score("2.50", 95, 70, 60, 70),
				"C": score("4.00", 40, 40, 90, 40),
			},
		},
		{
			ID: "steak", Name: "Steak", Category: "meat_seafood", Quantity: 2, Unit: "lb",
			Scores: map[string]domain.StoreItemScore{
				"A": score("12.00", 70, 80, 40, 60),
				"B": score("11.00", 80, 70, 50, 60),
				"C": score("14.00", 50, 40, 99, 40),
			},
		},
	}
}
