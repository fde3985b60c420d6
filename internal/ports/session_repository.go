package ports

import (
	"context"
	"shopping-route-service/internal/domain"
)

// Port: archive for finished shopping sessions.
type SessionRepository interface {
	// Persist a session and its checklist, replacing any previous copy.
	SaveSession(ctx context.Context, s *domain.ShoppingSession) error
	// Retrieve archived sessions, newest first.
	ListSessions(ctx context.Context) ([]*domain.ShoppingSession, error)
}
