package ports

import (
	"context"
	"shopping-route-service/internal/domain"
)

// PlanState is the user-driven part of a plan that survives restarts:
// the preference vector and the manual pins (item id -> store id).
type PlanState struct {
	Weights domain.PreferenceWeights
	Pins    map[string]string
}

// Port: key-value storage for PlanState, keyed by shopping list id.
type PlanStateCache interface {
	SaveState(ctx context.Context, listID string, state PlanState) error
	// Return the stored state; ok is false when nothing is stored.
	LoadState(ctx context.Context, listID string) (state PlanState, ok bool, err error)
}
