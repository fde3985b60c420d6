package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type StartSessionRequest struct {
	StoreID string `json:"store_id"`
}

type SessionItemRequest struct {
	StoreID string `json:"store_id"`
	ItemID  string `json:"item_id"`
}

type UnavailableRequest struct {
	StoreID        string `json:"store_id"`
	ItemID         string `json:"item_id"`
	SubstituteID   string `json:"substitute_id"`
	SubstituteName string `json:"substitute_name"`
}

// Price accepts a JSON number or a decimal string.
type PriceRequest struct {
	StoreID string           `json:"store_id"`
	ItemID  string           `json:"item_id"`
	Price   *decimal.Decimal `json:"price"`
}

type CompleteSessionRequest struct {
	StoreID    string `json:"store_id"`
	ReceiptRef string `json:"receipt_ref"`
}

type SessionItemResponse struct {
	ItemID         string  `json:"item_id"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Section        string  `json:"section"`
	EstimatedPrice string  `json:"estimated_price"`
	ActualPrice    *string `json:"actual_price"`
	Checked        bool    `json:"checked"`
	Unavailable    bool    `json:"unavailable"`
	SubstituteID   string  `json:"substitute_id,omitempty"`
	SubstituteName string  `json:"substitute_name,omitempty"`
}

type SessionResponse struct {
	SessionID    string                `json:"session_id"`
	StoreID      string                `json:"store_id"`
	StoreName    string                `json:"store_name"`
	Status       string                `json:"status"`
	StartedAt    time.Time             `json:"started_at"`
	EndedAt      *time.Time            `json:"ended_at"`
	CheckedCount int                   `json:"checked_count"`
	ActualTotal  string                `json:"actual_total"`
	ReceiptRef   string                `json:"receipt_ref,omitempty"`
	Items        []SessionItemResponse `json:"items"`
}
