package domain

// Represents a candidate store for one optimization run.
// A Store is immutable for the duration of a run; it carries the metadata the
// route planner needs (location, in-store minutes) and display fields.
type Store struct {
	ID               string
	Name             string
	DistanceMiles    float64
	Rating           float64
	EstimatedMinutes int
	PriceTier        int
	Location         Coordinates
}

// FindStore returns the store with the given id, preserving the caller's slice.
func FindStore(stores []Store, id string) (Store, bool) {
	for _, s := range stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}
