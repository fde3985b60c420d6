package services

import (
	"errors"
	"fmt"
	"math"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/ports"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultMinutesPerMile = 2.0
	DefaultMaxTripMinutes = 180.0
)

// RoutePlannerConfig holds the constants of the timing model.
type RoutePlannerConfig struct {
	MinutesPerMile float64
	MaxTripMinutes float64
	ReturnToStart  bool
}

func DefaultRoutePlannerConfig() RoutePlannerConfig {
	return RoutePlannerConfig{
		MinutesPerMile: DefaultMinutesPerMile,
		MaxTripMinutes: DefaultMaxTripMinutes,
	}
}

type PlanRouteRequest struct {
	Stores     []domain.Store
	Assignment domain.Assignment
	Items      []*domain.OptimizedItem
	Start      domain.Coordinates
	DepartAt   time.Time
	Savings    decimal.Decimal
}

// RoutePlanner orders the stores that received items into a visitation sequence.
type RoutePlanner struct {
	cfg      RoutePlannerConfig
	distance ports.DistanceProvider
}

func NewRoutePlanner(cfg RoutePlannerConfig, distance ports.DistanceProvider) (*RoutePlanner, error) {
	if distance == nil {
		return nil, errors.New("new route planner: distance provider must be non-nil")
	}
	if cfg.MinutesPerMile < 0 {
		return nil, fmt.Errorf("new route planner: minutes per mile %v must be >= 0", cfg.MinutesPerMile)
	}
	return &RoutePlanner{cfg: cfg, distance: distance}, nil
}

// Plan a shopping route using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes the immediate hop at each step; it does not attempt a
// globally optimal tour. Equal distances resolve to the earlier store in the
// request's store order, so identical inputs always yield the same route.
func (p *RoutePlanner) PlanRoute(req PlanRouteRequest) (*domain.Route, error) {
	route := &domain.Route{
		Stops:         []domain.Stop{},
		StartLocation: req.Start,
		DepartAt:      req.DepartAt,
		TotalSpend:    decimal.Zero,
		Savings:       req.Savings,
	}

	prices := make(map[string]decimal.Decimal, len(req.Items))
	for _, it := range req.Items {
		prices[it.ID] = it.AssignedPrice
	}

	remaining := make([]domain.Store, 0, len(req.Stores))
	for _, s := range req.Stores {
		if req.Assignment.Count(s.ID) > 0 {
			remaining = append(remaining, s)
		}
	}

	current := req.Start
	order := 1

	for len(remaining) > 0 {
		bestIdx := -1
		minMiles := math.Inf(1)

		// Select next stop by minimum hop distance (greedy step).
		// Strict comparison keeps the earliest store on ties.
		for i, s := range remaining {
			d := p.distance.Miles(current, s.Location)
			if d < minMiles {
				minMiles = d
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			return nil, errors.New("plan route: failed to select next store")
		}
		next := remaining[bestIdx]

		itemIDs := append([]string(nil), req.Assignment[next.ID]...)
		spend := decimal.Zero
		for _, id := range itemIDs {
			price, ok := prices[id]
			if !ok {
				return nil, fmt.Errorf("plan route: store %q bucket references unknown item %q", next.ID, id)
			}
			spend = spend.Add(price)
		}

		route.TotalDistanceMiles += minMiles
		route.TotalDurationMinutes += float64(next.EstimatedMinutes) + minMiles*p.cfg.MinutesPerMile

		route.Stops = append(route.Stops, domain.Stop{
			StoreID:          next.ID,
			StoreName:        next.Name,
			Order:            order,
			EstimatedArrival: req.DepartAt.Add(minutes(route.TotalDurationMinutes)),
			EstimatedMinutes: next.EstimatedMinutes,
			ItemCount:        len(itemIDs),
			ItemIDs:          itemIDs,
			EstimatedSpend:   spend,
			LegMiles:         minMiles,
			Location:         next.Location,
		})
		route.TotalSpend = route.TotalSpend.Add(spend)

		order++
		remaining = slices.Delete(remaining, bestIdx, bestIdx+1)
		current = next.Location
	}

	// Optionally includes return leg home for total route metrics.
	if p.cfg.ReturnToStart && len(route.Stops) > 0 {
		back := p.distance.Miles(current, req.Start)
		route.TotalDistanceMiles += back
		route.TotalDurationMinutes += back * p.cfg.MinutesPerMile
	}

	route.Warnings = p.routeWarnings(route, req.Items)
	return route, nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
