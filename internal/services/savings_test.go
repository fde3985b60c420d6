package services

import (
	"shopping-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateSavingsAgainstAverage(t *testing.T) {
	items := []*domain.OptimizedItem{
		{
			ID: "rice",
			Scores: map[string]domain.StoreItemScore{
				"A": score("2.00", 0, 0, 0, 0),
				"B": score("4.00", 0, 0, 0, 0),
				"C": outOfStock(score("1.00", 0, 0, 0, 0)),
			},
			AssignedStoreID: "A",
			AssignedPrice:   price("2.00"),
		},
	}

	r := CalculateSavings(items)
	require.True(t, r.Total.Equal(price("1.00")), "got %s", r.Total)
	require.True(t, r.VsAveragePrice.Equal(r.Total))
	require.True(t, r.PerStore["A"].Equal(price("1.00")))
}

func TestCalculateSavingsNegativeAndSkipped(t *testing.T) {
	items := []*domain.OptimizedItem{
		{
			ID: "steak",
			Scores: map[string]domain.StoreItemScore{
				"A": score("10.00", 0, 0, 0, 0),
				"C": score("14.00", 0, 0, 0, 0),
			},
			AssignedStoreID: "C",
			AssignedPrice:   price("14.00"),
		},
		{
			ID:     "saffron",
			Scores: map[string]domain.StoreItemScore{"A": outOfStock(score("30.00", 0, 0, 0, 0))},
		},
		{
			ID:               "pinned-oos",
			Scores:           map[string]domain.StoreItemScore{"B": outOfStock(score("5.00", 0, 0, 0, 0))},
			AssignedStoreID:  "B",
			AssignedPrice:    price("5.00"),
			ManuallyAssigned: true,
		},
	}

	r := CalculateSavings(items)
	require.True(t, r.Total.Equal(price("-2.00")), "got %s", r.Total)
	require.True(t, r.PerStore["C"].Equal(price("-2.00")))
	_, ok := r.PerStore["B"]
	require.False(t, ok, "items with no in-stock score contribute nothing")
}
