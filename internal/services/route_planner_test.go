package services

import (
	"shopping-route-service/internal/adapters/distance"
	"shopping-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var depart = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func newPlanner(t *testing.T, cfg RoutePlannerConfig) *RoutePlanner {
	t.Helper()
	p, err := NewRoutePlanner(cfg, distance.NewPlanar(distance.MilesPerDegree))
	require.NoError(t, err)
	return p
}

func assignedItems(t *testing.T) ([]*domain.OptimizedItem, domain.Assignment) {
	t.Helper()
	items := testItems()
	res, err := AssignItems(items, testStores(), domain.DefaultWeights())
	require.NoError(t, err)
	return items, res.Assignment
}

func TestRoutePlannerPlanRoute(t *testing.T) {
	items, assignment := assignedItems(t)

	route, err := newPlanner(t, DefaultRoutePlannerConfig()).PlanRoute(PlanRouteRequest{
		Stores:     testStores(),
		Assignment: assignment,
		Items:      items,
		DepartAt:   depart,
		Savings:    price("1.25"),
	})
	require.NoError(t, err)

	require.Len(t, route.Stops, 2, "C has no items and is skipped")
	require.Equal(t, "A", route.Stops[0].StoreID)
	require.Equal(t, "B", route.Stops[1].StoreID)
	require.Equal(t, 1, route.Stops[0].Order)
	require.Equal(t, 2, route.Stops[1].Order)

	hop := 0.01 * distance.MilesPerDegree
	require.InDelta(t, 2*hop, route.TotalDistanceMiles, 1e-9)
	require.InDelta(t, 20+15+2*hop*DefaultMinutesPerMile, route.TotalDurationMinutes, 1e-9)

	require.Equal(t, 2, route.Stops[1].ItemCount)
	require.True(t, route.Stops[0].EstimatedSpend.Equal(price("2.99")))
	require.True(t, route.Stops[1].EstimatedSpend.Equal(price("13.50")))
	require.True(t, route.TotalSpend.Equal(price("16.49")))
	require.True(t, route.Savings.Equal(price("1.25")))

	wantArrival := depart.Add(minutes(20 + hop*DefaultMinutesPerMile))
	require.WithinDuration(t, wantArrival, route.Stops[0].EstimatedArrival, time.Millisecond)
}

func TestRoutePlannerTotalSpendMatchesStops(t *testing.T) {
	items, assignment := assignedItems(t)
	route, err := newPlanner(t, DefaultRoutePlannerConfig()).PlanRoute(PlanRouteRequest{
		Stores: testStores(), Assignment: assignment, Items: items, DepartAt: depart,
	})
	require.NoError(t, err)

	sum := price("0")
	for i, s := range route.Stops {
		require.Equal(t, i+1, s.Order)
		sum = sum.Add(s.EstimatedSpend)
	}
	require.True(t, sum.Equal(route.TotalSpend))
}

func TestRoutePlannerDeterministicTieBreak(t *testing.T) {
	east := domain.Store{ID: "E", Name: "East", EstimatedMinutes: 10, Location: domain.Coordinates{Lon: 0.01}}
	west := domain.Store{ID: "W", Name: "West", EstimatedMinutes: 10, Location: domain.Coordinates{Lon: -0.01}}
	items := []*domain.OptimizedItem{
		{ID: "x", AssignedStoreID: "E", AssignedPrice: price("1")},
		{ID: "y", AssignedStoreID: "W", AssignedPrice: price("1")},
	}
	assignment := domain.Assignment{"E": {"x"}, "W": {"y"}}
	p := newPlanner(t, DefaultRoutePlannerConfig())

	first, err := p.PlanRoute(PlanRouteRequest{Stores: []domain.Store{east, west}, Assignment: assignment, Items: items, DepartAt: depart})
	require.NoError(t, err)
	again, err := p.PlanRoute(PlanRouteRequest{Stores: []domain.Store{east, west}, Assignment: assignment, Items: items, DepartAt: depart})
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Equal(t, "E", first.Stops[0].StoreID)

	flipped, err := p.PlanRoute(PlanRouteRequest{Stores: []domain.Store{west, east}, Assignment: assignment, Items: items, DepartAt: depart})
	require.NoError(t, err)
	require.Equal(t, "W", flipped.Stops[0].StoreID)
}

func TestRoutePlannerUsesProviderDistances(t *testing.T) {
	home := domain.Coordinates{}
	stores := testStores()
	// Make C look closest from home even though it is furthest on the map.
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: home, To: stores[2].Location, Miles: 0.1},
	})
	p, err := NewRoutePlanner(DefaultRoutePlannerConfig(), provider)
	require.NoError(t, err)

	items := testItems()
	for _, it := range items {
		it.AssignedPrice = price("1")
	}
	items[0].AssignedStoreID, items[1].AssignedStoreID, items[2].AssignedStoreID = "A", "B", "C"
	assignment := domain.Assignment{"A": {"milk"}, "B": {"bread"}, "C": {"steak"}}

	route, err := p.PlanRoute(PlanRouteRequest{Stores: stores, Assignment: assignment, Items: items, DepartAt: depart})
	require.NoError(t, err)
	require.Equal(t, []string{"C", "B", "A"}, stopIDs(route))
}

func TestRoutePlannerReturnToStart(t *testing.T) {
	items, assignment := assignedItems(t)
	cfg := DefaultRoutePlannerConfig()
	cfg.ReturnToStart = true

	route, err := newPlanner(t, cfg).PlanRoute(PlanRouteRequest{
		Stores: testStores(), Assignment: assignment, Items: items, DepartAt: depart,
	})
	require.NoError(t, err)

	hop := 0.01 * distance.MilesPerDegree
	require.InDelta(t, 4*hop, route.TotalDistanceMiles, 1e-9)
}

func TestRoutePlannerEmptyAssignment(t *testing.T) {
	route, err := newPlanner(t, DefaultRoutePlannerConfig()).PlanRoute(PlanRouteRequest{
		Stores: testStores(), Assignment: domain.Assignment{}, DepartAt: depart,
	})
	require.NoError(t, err)
	require.Empty(t, route.Stops)
	require.Zero(t, route.TotalDistanceMiles)
	require.True(t, route.TotalSpend.IsZero())
}

func TestRoutePlannerWarnings(t *testing.T) {
	stores := testStores()
	stores[2].EstimatedMinutes = 100
	items := testItems()
	items[0].AssignedStoreID, items[0].AssignedPrice = "A", price("2.99")
	items[1].AssignedStoreID, items[1].AssignedPrice = "C", price("4.00")
	assignment := domain.Assignment{"A": {"milk"}, "C": {"bread"}}

	cfg := DefaultRoutePlannerConfig()
	cfg.MaxTripMinutes = 100

	route, err := newPlanner(t, cfg).PlanRoute(PlanRouteRequest{
		Stores: stores, Assignment: assignment, Items: items[:2], DepartAt: depart,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, stopIDs(route))

	require.Len(t, route.Warnings, 2)
	require.Equal(t, WarnPerishableEarly, route.Warnings[0].Code)
	require.Equal(t, "A", route.Warnings[0].StoreID)
	require.Equal(t, WarnTripTooLong, route.Warnings[1].Code)
}

func TestRoutePlannerRejectsUnknownBucketItem(t *testing.T) {
	_, err := newPlanner(t, DefaultRoutePlannerConfig()).PlanRoute(PlanRouteRequest{
		Stores: testStores(), Assignment: domain.Assignment{"A": {"ghost"}}, DepartAt: depart,
	})
	require.Error(t, err)

	_, err = NewRoutePlanner(DefaultRoutePlannerConfig(), nil)
	require.Error(t, err)
}

func stopIDs(r *domain.Route) []string {
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		ids = append(ids, s.StoreID)
	}
	return ids
}
