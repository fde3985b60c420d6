package ports

import (
	"context"
	"shopping-route-service/internal/domain"
)

// Port: the Store/Location and Score Provider boundary.
// Stores are returned in a stable order; that order breaks score and route ties.
type CatalogProvider interface {
	// Retrieve the candidate stores.
	ListStores(ctx context.Context) ([]domain.Store, error)
	// Retrieve the items of a shopping list with their per-store scores.
	ListItems(ctx context.Context, listID string) ([]*domain.OptimizedItem, error)
}
