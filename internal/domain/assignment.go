package domain

import (
	"fmt"
	"slices"
)

// Assignment maps store id to the ids of the items bought there.
// Every assigned item appears in exactly one bucket and that bucket's key equals
// the item's AssignedStoreID; unassigned items appear in none.
type Assignment map[string][]string

// Add appends itemID to storeID's bucket.
func (a Assignment) Add(storeID, itemID string) {
	a[storeID] = append(a[storeID], itemID)
}

// Remove drops itemID from storeID's bucket and deletes the bucket once empty.
// It reports whether the item was present.
func (a Assignment) Remove(storeID, itemID string) bool {
	bucket := a[storeID]
	idx := slices.Index(bucket, itemID)
	if idx < 0 {
		return false
	}

	bucket = slices.Delete(slices.Clone(bucket), idx, idx+1)
	if len(bucket) == 0 {
		delete(a, storeID)
		return true
	}
	a[storeID] = bucket
	return true
}

// Contains reports whether itemID is in storeID's bucket.
func (a Assignment) Contains(storeID, itemID string) bool {
	return slices.Contains(a[storeID], itemID)
}

// Count returns the number of items assigned to storeID.
func (a Assignment) Count(storeID string) int {
	return len(a[storeID])
}

// Clone deep-copies the buckets.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = slices.Clone(v)
	}
	return out
}

// Validate checks bidirectional consistency between the buckets and items.
func (a Assignment) Validate(items []*OptimizedItem) error {
	seen := make(map[string]string, len(items))
	for storeID, bucket := range a {
		for _, itemID := range bucket {
			if prev, ok := seen[itemID]; ok {
				return fmt.Errorf(
					"validate assignment: item %q in buckets %q and %q: %w",
					itemID, prev, storeID, ErrInconsistentAssignment,
				)
			}
			seen[itemID] = storeID
		}
	}

	for _, it := range items {
		storeID, inBucket := seen[it.ID]
		switch {
		case it.IsAssigned() && !inBucket:
			return fmt.Errorf("validate assignment: item %q assigned to %q but in no bucket: %w",
				it.ID, it.AssignedStoreID, ErrInconsistentAssignment)
		case !it.IsAssigned() && inBucket:
			return fmt.Errorf("validate assignment: unassigned item %q found in bucket %q: %w",
				it.ID, storeID, ErrInconsistentAssignment)
		case inBucket && storeID != it.AssignedStoreID:
			return fmt.Errorf("validate assignment: item %q in bucket %q but assigned to %q: %w",
				it.ID, storeID, it.AssignedStoreID, ErrInconsistentAssignment)
		}
		delete(seen, it.ID)
	}

	for itemID, storeID := range seen {
		return fmt.Errorf("validate assignment: unknown item %q in bucket %q: %w",
			itemID, storeID, ErrInconsistentAssignment)
	}
	return nil
}
