package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state of a ShoppingSession.
// Transitions only move forward: pending -> in-progress -> completed.
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
)

// SessionItem is one checklist entry.
type SessionItem struct {
	ItemID         string
	Name           string
	Quantity       float64
	Unit           string
	Section        string
	EstimatedPrice decimal.Decimal
	ActualPrice    *decimal.Decimal
	Checked        bool
	Unavailable    bool
	SubstituteID   string
	SubstituteName string
}

// Price returns the actual price when recorded, otherwise the estimate.
func (it SessionItem) Price() decimal.Decimal {
	if it.ActualPrice != nil {
		return *it.ActualPrice
	}
	return it.EstimatedPrice
}

// ShoppingSession tracks checklist progress for one store visit.
type ShoppingSession struct {
	ID          string
	StoreID     string
	StoreName   string
	Items       []SessionItem
	Status      SessionStatus
	StartedAt   time.Time
	EndedAt     *time.Time
	ActualTotal decimal.Decimal
	ReceiptRef  string
}

// NewSession snapshots the given items into a pending checklist.
func NewSession(id string, store Store, items []*OptimizedItem) *ShoppingSession {
	checklist := make([]SessionItem, 0, len(items))
	for _, it := range items {
		checklist = append(checklist, SessionItem{
			ItemID:         it.ID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Section:        it.Category,
			EstimatedPrice: it.AssignedPrice,
		})
	}

	return &ShoppingSession{
		ID:          id,
		StoreID:     store.ID,
		StoreName:   store.Name,
		Items:       checklist,
		Status:      SessionPending,
		ActualTotal: decimal.Zero,
	}
}

// Begin moves a pending session to in-progress.
func (s *ShoppingSession) Begin(now time.Time) error {
	if s.Status != SessionPending {
		return fmt.Errorf("begin session %q: status %s: %w", s.StoreID, s.Status, ErrSessionExists)
	}
	s.Status = SessionInProgress
	s.StartedAt = now
	s.ActualTotal = decimal.Zero
	return nil
}

func (s *ShoppingSession) item(itemID string) (*SessionItem, error) {
	if s.Status == SessionCompleted {
		return nil, fmt.Errorf("session %q: %w", s.StoreID, ErrSessionCompleted)
	}
	for i := range s.Items {
		if s.Items[i].ItemID == itemID {
			return &s.Items[i], nil
		}
	}
	return nil, fmt.Errorf("session %q: item %q: %w", s.StoreID, itemID, ErrItemNotFound)
}

// ToggleChecked flips the checked flag. ActualTotal is left as is.
func (s *ShoppingSession) ToggleChecked(itemID string) error {
	it, err := s.item(itemID)
	if err != nil {
		return fmt.Errorf("toggle checked: %w", err)
	}
	it.Checked = !it.Checked
	return nil
}

// MarkUnavailable flags the entry and records an optional substitute.
func (s *ShoppingSession) MarkUnavailable(itemID, substituteID, substituteName string) error {
	it, err := s.item(itemID)
	if err != nil {
		return fmt.Errorf("mark unavailable: %w", err)
	}
	it.Unavailable = true
	it.SubstituteID = substituteID
	it.SubstituteName = substituteName
	return nil
}

// UpdateActualPrice records the shelf price and recomputes ActualTotal.
func (s *ShoppingSession) UpdateActualPrice(itemID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("update actual price: item %q price %s: %w", itemID, price, ErrInvalidPrice)
	}
	it, err := s.item(itemID)
	if err != nil {
		return fmt.Errorf("update actual price: %w", err)
	}
	p := price
	it.ActualPrice = &p
	s.recomputeTotal()
	return nil
}

// Complete finalizes the session.
func (s *ShoppingSession) Complete(now time.Time, receiptRef string) error {
	if s.Status == SessionCompleted {
		return fmt.Errorf("complete session %q: %w", s.StoreID, ErrSessionCompleted)
	}
	s.recomputeTotal()
	s.Status = SessionCompleted
	end := now
	s.EndedAt = &end
	if receiptRef != "" {
		s.ReceiptRef = receiptRef
	}
	return nil
}

// CheckedCount returns how many entries are checked.
func (s *ShoppingSession) CheckedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Checked {
			n++
		}
	}
	return n
}

func (s *ShoppingSession) recomputeTotal() {
	total := decimal.Zero
	for _, it := range s.Items {
		if it.Checked {
			total = total.Add(it.Price())
		}
	}
	s.ActualTotal = total
}

// Clone returns a deep copy safe to hand to readers.
func (s *ShoppingSession) Clone() *ShoppingSession {
	c := *s
	c.Items = make([]SessionItem, len(s.Items))
	for i, it := range s.Items {
		if it.ActualPrice != nil {
			p := *it.ActualPrice
			it.ActualPrice = &p
		}
		c.Items[i] = it
	}
	if s.EndedAt != nil {
		end := *s.EndedAt
		c.EndedAt = &end
	}
	return &c
}
