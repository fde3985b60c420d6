package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreItemScore is the Score Provider's view of one item at one store.
// Sub-scores are 0..100. Values are read-only to the engine.
type StoreItemScore struct {
	Price          decimal.Decimal
	PriceScore     float64
	DistanceScore  float64
	QualityScore   float64
	TimeScore      float64
	CompositeScore float64
	InStock        bool
	UpdatedAt      time.Time
}

// Weighted returns the composite for this score under w.
// The denominator is the weight sum so unnormalized vectors still rank correctly.
func (s StoreItemScore) Weighted(w PreferenceWeights) float64 {
	total := float64(w.Sum())
	if total == 0 {
		return 0
	}
	return (s.PriceScore*float64(w.Price) +
		s.DistanceScore*float64(w.Distance) +
		s.QualityScore*float64(w.Quality) +
		s.TimeScore*float64(w.Time)) / total
}

// OptimizedItem is a shopping-list entry as seen by the optimizer.
//
// Scores is keyed by store id and is the only score container; the optimizer
// fills the Assigned* fields and BestScore, a manual move sets ManuallyAssigned.
type OptimizedItem struct {
	ID                string
	Name              string
	Category          string
	Quantity          float64
	Unit              string
	Scores            map[string]StoreItemScore
	AssignedStoreID   string
	AssignedStoreName string
	AssignedPrice     decimal.Decimal
	BestScore         float64
	ManuallyAssigned  bool
}

// Clone copies the item. Scores are shared since they are never mutated.
func (i *OptimizedItem) Clone() *OptimizedItem {
	c := *i
	return &c
}

// IsAssigned reports whether the item sits in a store bucket.
func (i *OptimizedItem) IsAssigned() bool {
	return i.AssignedStoreID != ""
}

// InStockPrices returns the prices of every in-stock score entry.
func (i *OptimizedItem) InStockPrices() []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(i.Scores))
	for _, s := range i.Scores {
		if s.InStock {
			prices = append(prices, s.Price)
		}
	}
	return prices
}

// FindItem returns the item with the given id.
func FindItem(items []*OptimizedItem, id string) (*OptimizedItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}
