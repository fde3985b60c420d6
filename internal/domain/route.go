package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Represents a single store visit in a shopping route.
// Order starts at 1. EstimatedArrival is the trip start plus the cumulative
// duration through this stop (travel and in-store time).
type Stop struct {
	StoreID          string
	StoreName        string
	Order            int
	EstimatedArrival time.Time
	EstimatedMinutes int
	ItemCount        int
	ItemIDs          []string
	EstimatedSpend   decimal.Decimal
	LegMiles         float64
	Location         Coordinates
}

// RouteWarning flags a soft constraint the route does not satisfy.
type RouteWarning struct {
	Code    string
	StoreID string
	Message string
}

// Represents the planned multi-stop trip for the current assignment.
// A Route is immutable planning data and is rebuilt whenever the assignment changes.
type Route struct {
	Stops                []Stop
	StartLocation        Coordinates
	DepartAt             time.Time
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
	TotalSpend           decimal.Decimal
	Savings              decimal.Decimal
	Warnings             []RouteWarning
}
