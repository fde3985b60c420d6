package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"shopping-route-service/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

// dialect carries the SQL that differs between SQLite and Postgres.
type dialect struct {
	name               string
	upsertSession      string
	deleteSessionItems string
	insertSessionItem  string
	selectSessions     string
	selectSessionItems string
}

func saveSession(ctx context.Context, db *sql.DB, d dialect, s *domain.ShoppingSession) error {
	if db == nil {
		return fmt.Errorf("%s session repository: db is nil", d.name)
	}
	if s == nil || s.ID == "" {
		return fmt.Errorf("save session: session id must be non-empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save session: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var endedAt sql.NullString
	if s.EndedAt != nil {
		endedAt = sql.NullString{String: s.EndedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	if _, err := tx.ExecContext(ctx, d.upsertSession,
		s.ID, s.StoreID, s.StoreName, string(s.Status),
		s.StartedAt.UTC().Format(time.RFC3339Nano), endedAt,
		s.ActualTotal.String(), s.ReceiptRef,
	); err != nil {
		return fmt.Errorf("save session %q: upsert: %w", s.ID, err)
	}

	if _, err := tx.ExecContext(ctx, d.deleteSessionItems, s.ID); err != nil {
		return fmt.Errorf("save session %q: clear items: %w", s.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, d.insertSessionItem)
	if err != nil {
		return fmt.Errorf("save session %q: db prepare: %w", s.ID, err)
	}
	defer stmt.Close()

	for i, it := range s.Items {
		var actual sql.NullString
		if it.ActualPrice != nil {
			actual = sql.NullString{String: it.ActualPrice.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			s.ID, i, it.ItemID, it.Name, it.Quantity, it.Unit, it.Section,
			it.EstimatedPrice.String(), actual, it.Checked, it.Unavailable,
			it.SubstituteID, it.SubstituteName,
		); err != nil {
			return fmt.Errorf("save session %q item=%q: %w", s.ID, it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save session %q commit: %w", s.ID, err)
	}
	return nil
}

func listSessions(ctx context.Context, db *sql.DB, d dialect) ([]*domain.ShoppingSession, error) {
	if db == nil {
		return nil, fmt.Errorf("%s session repository: db is nil", d.name)
	}

	rows, err := db.QueryContext(ctx, d.selectSessions)
	if err != nil {
		return nil, fmt.Errorf("list sessions: query shopping_sessions table: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.ShoppingSession, 0, 16)
	for rows.Next() {
		var (
			s               domain.ShoppingSession
			status, started string
			total           string
			ended           sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.StoreID, &s.StoreName, &status, &started, &ended, &total, &s.ReceiptRef); err != nil {
			return nil, fmt.Errorf("list sessions: scan rows: %w", err)
		}
		s.Status = domain.SessionStatus(status)
		if s.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("list sessions: session %q started_at: %w", s.ID, err)
		}
		if ended.Valid {
			t, err := time.Parse(time.RFC3339Nano, ended.String)
			if err != nil {
				return nil, fmt.Errorf("list sessions: session %q ended_at: %w", s.ID, err)
			}
			s.EndedAt = &t
		}
		if s.ActualTotal, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("list sessions: session %q actual_total: %w", s.ID, err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: row iteration: %w", err)
	}
	rows.Close()

	for _, s := range sessions {
		items, err := listSessionItems(ctx, db, d, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return sessions, nil
}

func listSessionItems(ctx context.Context, db *sql.DB, d dialect, sessionID string) ([]domain.SessionItem, error) {
	rows, err := db.QueryContext(ctx, d.selectSessionItems, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session items %q: query: %w", sessionID, err)
	}
	defer rows.Close()

	items := make([]domain.SessionItem, 0, 16)
	for rows.Next() {
		var (
			it        domain.SessionItem
			estimated string
			actual    sql.NullString
		)
		if err := rows.Scan(
			&it.ItemID, &it.Name, &it.Quantity, &it.Unit, &it.Section,
			&estimated, &actual, &it.Checked, &it.Unavailable,
			&it.SubstituteID, &it.SubstituteName,
		); err != nil {
			return nil, fmt.Errorf("list session items %q: scan rows: %w", sessionID, err)
		}
		if it.EstimatedPrice, err = decimal.NewFromString(estimated); err != nil {
			return nil, fmt.Errorf("list session items %q: estimated_price: %w", sessionID, err)
		}
		if actual.Valid {
			p, err := decimal.NewFromString(actual.String)
			if err != nil {
				return nil, fmt.Errorf("list session items %q: actual_price: %w", sessionID, err)
			}
			it.ActualPrice = &p
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session items %q: row iteration: %w", sessionID, err)
	}
	return items, nil
}
