package dto

import "time"

type WeightsResponse struct {
	Price    int    `json:"price"`
	Distance int    `json:"distance"`
	Quality  int    `json:"quality"`
	Time     int    `json:"time"`
	Preset   string `json:"preset"`
}

type ItemResponse struct {
	ItemID           string  `json:"item_id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit"`
	AssignedStoreID  string  `json:"assigned_store_id,omitempty"`
	AssignedPrice    string  `json:"assigned_price,omitempty"`
	BestScore        float64 `json:"best_score"`
	ManuallyAssigned bool    `json:"manually_assigned"`
}

type StopResponse struct {
	StoreID          string    `json:"store_id"`
	StoreName        string    `json:"store_name"`
	Order            int       `json:"order"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	ItemCount        int       `json:"item_count"`
	ItemIDs          []string  `json:"item_ids"`
	EstimatedSpend   string    `json:"estimated_spend"`
	LegMiles         float64   `json:"leg_miles"`
}

type RouteResponse struct {
	DepartAt             time.Time         `json:"depart_at"`
	TotalDistanceMiles   float64           `json:"total_distance_miles"`
	TotalDurationMinutes float64           `json:"total_duration_minutes"`
	TotalSpend           string            `json:"total_spend"`
	Savings              string            `json:"savings"`
	Stops                []StopResponse    `json:"stops"`
	Warnings             []WarningResponse `json:"warnings"`
}

type SavingsResponse struct {
	Total          string            `json:"total"`
	VsAveragePrice string            `json:"vs_average_price"`
	PerStore       map[string]string `json:"per_store"`
}

type WarningResponse struct {
	Code    string `json:"code"`
	ItemID  string `json:"item_id,omitempty"`
	StoreID string `json:"store_id,omitempty"`
	Message string `json:"message"`
}

type PlanResponse struct {
	Generation   uint64              `json:"generation"`
	CalculatedAt time.Time           `json:"calculated_at"`
	Calculating  bool                `json:"calculating"`
	Weights      WeightsResponse     `json:"weights"`
	Assignment   map[string][]string `json:"assignment"`
	Items        []ItemResponse      `json:"items"`
	Savings      SavingsResponse     `json:"savings"`
	Route        RouteResponse       `json:"route"`
	Warnings     []WarningResponse   `json:"warnings"`
}

type RecalculateResponse struct {
	Status string `json:"status"`
}
