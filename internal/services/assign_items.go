package services

import (
	"errors"
	"fmt"
	"math"
	"shopping-route-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Warning codes attached to an AssignmentResult.
const (
	WarnNoInStockStore     = "no_in_stock_store"
	WarnPinnedStoreUnknown = "pinned_store_unknown"
)

// Warning reports a data-quality gap found during a pass. It never aborts the pass.
type Warning struct {
	Code    string
	ItemID  string
	StoreID string
	Message string
}

type AssignmentResult struct {
	Assignment domain.Assignment
	Warnings   []Warning
}

// AssignItems assigns every unpinned item to the in-stock store with the highest
// weighted composite score.
//
// Stores are visited in the given order and only a strictly greater score
// replaces the current best, so ties resolve to the earliest store. Pinned items
// keep their store and are bucketed without consulting scores. Items with no
// in-stock score are left unassigned and reported as warnings.
func AssignItems(
	items []*domain.OptimizedItem,
	stores []domain.Store,
	weights domain.PreferenceWeights,
) (*AssignmentResult, error) {
	if weights.Sum() <= 0 {
		return nil, fmt.Errorf("assign items: weights sum to %d: %w", weights.Sum(), domain.ErrInvalidWeight)
	}

	res := &AssignmentResult{Assignment: domain.Assignment{}}

	for _, it := range items {
		if it.ManuallyAssigned && it.IsAssigned() {
			res.Assignment.Add(it.AssignedStoreID, it.ID)
			if _, ok := domain.FindStore(stores, it.AssignedStoreID); !ok {
				res.Warnings = append(res.Warnings, Warning{
					Code:    WarnPinnedStoreUnknown,
					ItemID:  it.ID,
					StoreID: it.AssignedStoreID,
					Message: fmt.Sprintf("item %q is pinned to store %q which is not a candidate", it.Name, it.AssignedStoreID),
				})
			}
			continue
		}

		var (
			best      domain.Store
			bestScore = math.Inf(-1)
			found     bool
		)
		for _, s := range stores {
			score, ok := it.Scores[s.ID]
			if !ok || !score.InStock {
				continue
			}
			composite := score.Weighted(weights)
			if composite > bestScore {
				best = s
				bestScore = composite
				found = true
			}
		}

		if !found {
			it.AssignedStoreID = ""
			it.AssignedStoreName = ""
			it.AssignedPrice = decimal.Zero
			it.BestScore = 0
			res.Warnings = append(res.Warnings, Warning{
				Code:    WarnNoInStockStore,
				ItemID:  it.ID,
				Message: fmt.Sprintf("item %q is not in stock at any candidate store", it.Name),
			})
			continue
		}

		it.AssignedStoreID = best.ID
		it.AssignedStoreName = best.Name
		it.AssignedPrice = it.Scores[best.ID].Price
		it.BestScore = bestScore
		res.Assignment.Add(best.ID, it.ID)
	}

	if err := res.Assignment.Validate(items); err != nil {
		return nil, fmt.Errorf("assign items: %w", err)
	}
	return res, nil
}

// MoveItem pins an item to another store.
//
// The item must currently sit in fromStoreID's bucket (an unassigned item moves
// with an empty fromStoreID) and must have a score entry for toStoreID. On any
// failure the assignment and the item are left untouched.
func MoveItem(
	items []*domain.OptimizedItem,
	stores []domain.Store,
	assignment domain.Assignment,
	itemID, fromStoreID, toStoreID string,
) error {
	it, ok := domain.FindItem(items, itemID)
	if !ok {
		return fmt.Errorf("move item %q: %w", itemID, domain.ErrItemNotFound)
	}
	if it.AssignedStoreID != fromStoreID {
		return fmt.Errorf("move item %q: from store %q: %w", itemID, fromStoreID, domain.ErrItemNotInStore)
	}
	if fromStoreID != "" && !assignment.Contains(fromStoreID, itemID) {
		return fmt.Errorf("move item %q: from store %q: %w", itemID, fromStoreID, domain.ErrItemNotInStore)
	}
	score, ok := it.Scores[toStoreID]
	if !ok {
		return fmt.Errorf("move item %q: to store %q: %w", itemID, toStoreID, domain.ErrNoScoreForStore)
	}

	storeName := toStoreID
	if s, ok := domain.FindStore(stores, toStoreID); ok {
		storeName = s.Name
	}

	if fromStoreID != "" {
		assignment.Remove(fromStoreID, itemID)
	}
	assignment.Add(toStoreID, itemID)

	it.AssignedStoreID = toStoreID
	it.AssignedStoreName = storeName
	it.AssignedPrice = score.Price
	it.ManuallyAssigned = true

	if err := assignment.Validate(items); err != nil {
		// Programming error: the checks above should make this unreachable.
		return errors.Join(fmt.Errorf("move item %q", itemID), err)
	}
	return nil
}

// ResetManualAssignment clears the pin so the next pass may re-score the item.
func ResetManualAssignment(items []*domain.OptimizedItem, itemID string) error {
	it, ok := domain.FindItem(items, itemID)
	if !ok {
		return fmt.Errorf("reset manual assignment %q: %w", itemID, domain.ErrItemNotFound)
	}
	it.ManuallyAssigned = false
	return nil
}
