package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/platform/obs"
)

var postgresDialect = dialect{
	name: "postgres",
	upsertSession: `
	INSERT INTO shopping_sessions (
		session_id, store_id, store_name, status, started_at, ended_at, actual_total, receipt_ref
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (session_id) DO UPDATE
	SET status = EXCLUDED.status,
		ended_at = EXCLUDED.ended_at,
		actual_total = EXCLUDED.actual_total,
		receipt_ref = EXCLUDED.receipt_ref;
	`,
	deleteSessionItems: `DELETE FROM shopping_session_items WHERE session_id = $1;`,
	insertSessionItem: `
	INSERT INTO shopping_session_items (
		session_id, position, item_id, name, quantity, unit, section,
		estimated_price, actual_price, checked, unavailable, substitute_id, substitute_name
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
	selectSessions: `
	SELECT session_id, store_id, store_name, status, started_at, ended_at, actual_total, receipt_ref
	FROM shopping_sessions
	ORDER BY started_at DESC, session_id;
	`,
	selectSessionItems: `
	SELECT item_id, name, quantity, unit, section, estimated_price, actual_price,
		checked, unavailable, substitute_id, substitute_name
	FROM shopping_session_items
	WHERE session_id = $1
	ORDER BY position;
	`,
}

// SQLSessionRepository is a Postgres-backed session archive (pgx stdlib driver).
type SQLSessionRepository struct {
	DB *sql.DB
}

func NewSQLSessionRepository(db *sql.DB) *SQLSessionRepository {
	return &SQLSessionRepository{DB: db}
}

// InitSessionSchema creates the session archive tables in Postgres.
func InitSessionSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init session schema: DB is nil")
	}
	for i, stmt := range []string{createSessionsQuery, createSessionItemsQuery} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init session schema: exec statement #%d: %w", i+1, err)
		}
	}
	return nil
}

func (s *SQLSessionRepository) SaveSession(ctx context.Context, sess *domain.ShoppingSession) (err error) {
	defer obs.Time(ctx, "sessions.sql.Save")(&err)
	return saveSession(ctx, s.DB, postgresDialect, sess)
}

func (s *SQLSessionRepository) ListSessions(ctx context.Context) (_ []*domain.ShoppingSession, err error) {
	defer obs.Time(ctx, "sessions.sql.List")(&err)
	return listSessions(ctx, s.DB, postgresDialect)
}
