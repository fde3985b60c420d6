package repositories

import (
	"context"
	"database/sql"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/platform/obs"
)

var sqliteDialect = dialect{
	name: "sqlite",
	upsertSession: `
	INSERT OR REPLACE INTO shopping_sessions (
		session_id, store_id, store_name, status, started_at, ended_at, actual_total, receipt_ref
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`,
	deleteSessionItems: `DELETE FROM shopping_session_items WHERE session_id = ?;`,
	insertSessionItem: `
	INSERT INTO shopping_session_items (
		session_id, position, item_id, name, quantity, unit, section,
		estimated_price, actual_price, checked, unavailable, substitute_id, substitute_name
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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
	WHERE session_id = ?
	ORDER BY position;
	`,
}

// SQLite-backed implementation of the SessionRepository port.
type SqliteSessionRepository struct{ DB *sql.DB }

func NewSqliteSessionRepository(db *sql.DB) *SqliteSessionRepository {
	return &SqliteSessionRepository{DB: db}
}

func (s *SqliteSessionRepository) SaveSession(ctx context.Context, sess *domain.ShoppingSession) (err error) {
	defer obs.Time(ctx, "sessions.sqlite.Save")(&err)
	return saveSession(ctx, s.DB, sqliteDialect, sess)
}

func (s *SqliteSessionRepository) ListSessions(ctx context.Context) (_ []*domain.ShoppingSession, err error) {
	defer obs.Time(ctx, "sessions.sqlite.List")(&err)
	return listSessions(ctx, s.DB, sqliteDialect)
}
