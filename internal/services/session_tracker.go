package services

import (
	"fmt"
	"shopping-route-service/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionTracker keeps one ShoppingSession per store and a single pointer to the
// store the user is currently shopping at. Sessions are independent; starting a
// second one moves the pointer rather than stacking.
type SessionTracker struct {
	sessions map[string]*domain.ShoppingSession
	active   string
	now      func() time.Time
	newID    func() string
}

func NewSessionTracker(now func() time.Time) *SessionTracker {
	if now == nil {
		now = time.Now
	}
	return &SessionTracker{
		sessions: make(map[string]*domain.ShoppingSession),
		now:      now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Start snapshots the store's bucket into a new in-progress session.
// Nothing is created when the store has no items.
func (t *SessionTracker) Start(store domain.Store, items []*domain.OptimizedItem) (*domain.ShoppingSession, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("start session %q: %w", store.ID, domain.ErrEmptyBucket)
	}
	if _, ok := t.sessions[store.ID]; ok {
		return nil, fmt.Errorf("start session %q: %w", store.ID, domain.ErrSessionExists)
	}

	s := domain.NewSession(t.newID(), store, items)
	if err := s.Begin(t.now()); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	t.sessions[store.ID] = s
	t.active = store.ID
	return s, nil
}

func (t *SessionTracker) session(storeID string) (*domain.ShoppingSession, error) {
	s, ok := t.sessions[storeID]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", storeID, domain.ErrSessionNotFound)
	}
	return s, nil
}

func (t *SessionTracker) ToggleChecked(storeID, itemID string) error {
	s, err := t.session(storeID)
	if err != nil {
		return fmt.Errorf("toggle checked: %w", err)
	}
	return s.ToggleChecked(itemID)
}

func (t *SessionTracker) MarkUnavailable(storeID, itemID, substituteID, substituteName string) error {
	s, err := t.session(storeID)
	if err != nil {
		return fmt.Errorf("mark unavailable: %w", err)
	}
	return s.MarkUnavailable(itemID, substituteID, substituteName)
}

func (t *SessionTracker) UpdateActualPrice(storeID, itemID string, price decimal.Decimal) error {
	s, err := t.session(storeID)
	if err != nil {
		return fmt.Errorf("update actual price: %w", err)
	}
	return s.UpdateActualPrice(itemID, price)
}

// Complete finalizes the store's session and clears the active pointer when it
// points at that store.
func (t *SessionTracker) Complete(storeID, receiptRef string) (*domain.ShoppingSession, error) {
	s, err := t.session(storeID)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	if err := s.Complete(t.now(), receiptRef); err != nil {
		return nil, err
	}
	if t.active == storeID {
		t.active = ""
	}
	return s, nil
}

// Session returns a copy of the store's session.
func (t *SessionTracker) Session(storeID string) (*domain.ShoppingSession, bool) {
	s, ok := t.sessions[storeID]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Active returns a copy of the currently active session, if any.
func (t *SessionTracker) Active() (*domain.ShoppingSession, bool) {
	if t.active == "" {
		return nil, false
	}
	return t.Session(t.active)
}

// ActiveStoreID is the store the user is currently shopping at, or "".
func (t *SessionTracker) ActiveStoreID() string {
	return t.active
}
