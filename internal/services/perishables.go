package services

import (
	"fmt"
	"shopping-route-service/internal/domain"
)

// Warning codes attached to a domain.Route.
const (
	WarnPerishableEarly = "perishable_early"
	WarnTripTooLong     = "trip_too_long"
)

// perishableLimits is how long, in minutes, a category keeps once picked up.
var perishableLimits = map[string]float64{
	"frozen":        30,
	"refrigerated":  60,
	"meat_seafood":  60,
	"dairy":         90,
	"fresh_produce": 180,
	"bakery":        240,
}

// PerishableLimit returns the holding limit for a category.
func PerishableLimit(category string) (float64, bool) {
	l, ok := perishableLimits[category]
	return l, ok
}

// routeWarnings flags stops whose perishables ride longer than their limit and
// trips longer than MaxTripMinutes. It never reorders stops.
func (p *RoutePlanner) routeWarnings(route *domain.Route, items []*domain.OptimizedItem) []domain.RouteWarning {
	warnings := []domain.RouteWarning{}

	categories := make(map[string]string, len(items))
	for _, it := range items {
		categories[it.ID] = it.Category
	}

	for _, stop := range route.Stops {
		limit, category := 0.0, ""
		for _, id := range stop.ItemIDs {
			l, ok := PerishableLimit(categories[id])
			if ok && (category == "" || l < limit) {
				limit, category = l, categories[id]
			}
		}
		if category == "" {
			continue
		}

		leftAt := stop.EstimatedArrival.Sub(route.DepartAt).Minutes()
		ride := route.TotalDurationMinutes - leftAt
		if ride > limit {
			warnings = append(warnings, domain.RouteWarning{
				Code:    WarnPerishableEarly,
				StoreID: stop.StoreID,
				Message: fmt.Sprintf(
					"%s items from %s ride %.0f min, limit %.0f min",
					category, stop.StoreName, ride, limit,
				),
			})
		}
	}

	if p.cfg.MaxTripMinutes > 0 && route.TotalDurationMinutes > p.cfg.MaxTripMinutes {
		warnings = append(warnings, domain.RouteWarning{
			Code: WarnTripTooLong,
			Message: fmt.Sprintf(
				"trip takes %.0f min, limit %.0f min",
				route.TotalDurationMinutes, p.cfg.MaxTripMinutes,
			),
		})
	}

	return warnings
}
