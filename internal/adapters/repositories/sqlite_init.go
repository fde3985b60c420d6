package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		store_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		distance_miles REAL NOT NULL,
		rating REAL NOT NULL,
		estimated_minutes INTEGER NOT NULL,
		price_tier INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	createListItemsQuery := `
	CREATE TABLE IF NOT EXISTS list_items (
		list_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		quantity REAL NOT NULL,
		unit TEXT NOT NULL,
		PRIMARY KEY (list_id, item_id)
	);
	`

	createItemScoresQuery := `
	CREATE TABLE IF NOT EXISTS item_scores (
		item_id TEXT NOT NULL,
		store_id TEXT NOT NULL,
		price TEXT NOT NULL,
		price_score REAL NOT NULL,
		distance_score REAL NOT NULL,
		quality_score REAL NOT NULL,
		time_score REAL NOT NULL,
		composite_score REAL NOT NULL,
		in_stock INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (item_id, store_id)
	);
	`

	statements := []string{
		createStoresQuery,
		createListItemsQuery,
		createItemScoresQuery,
		createSessionsQuery,
		createSessionItemsQuery,
		`CREATE INDEX IF NOT EXISTS idx_item_scores_store ON item_scores(store_id);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Session tables share one definition between SQLite and Postgres.
const createSessionsQuery = `
	CREATE TABLE IF NOT EXISTS shopping_sessions (
		session_id TEXT PRIMARY KEY,
		store_id TEXT NOT NULL,
		store_name TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT,
		actual_total TEXT NOT NULL,
		receipt_ref TEXT NOT NULL DEFAULT ''
	);
	`

const createSessionItemsQuery = `
	CREATE TABLE IF NOT EXISTS shopping_session_items (
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		item_id TEXT NOT NULL,
		name TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		section TEXT NOT NULL,
		estimated_price TEXT NOT NULL,
		actual_price TEXT,
		checked BOOLEAN NOT NULL,
		unavailable BOOLEAN NOT NULL,
		substitute_id TEXT NOT NULL DEFAULT '',
		substitute_name TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (session_id, item_id)
	);
	`

type StoreSeed struct {
	StoreID          string  `json:"store_id"`
	Name             string  `json:"name"`
	DistanceMiles    float64 `json:"distance_miles"`
	Rating           float64 `json:"rating"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	PriceTier        int     `json:"price_tier"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

type ScoreSeed struct {
	Price          decimal.Decimal `json:"price"`
	PriceScore     float64         `json:"price_score"`
	DistanceScore  float64         `json:"distance_score"`
	QualityScore   float64         `json:"quality_score"`
	TimeScore      float64         `json:"time_score"`
	CompositeScore float64         `json:"composite_score"`
	InStock        bool            `json:"in_stock"`
	UpdatedAt      *time.Time      `json:"updated_at"`
}

type ItemSeed struct {
	ItemID   string               `json:"item_id"`
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Quantity float64              `json:"quantity"`
	Unit     string               `json:"unit"`
	Scores   map[string]ScoreSeed `json:"scores"`
}

type ListSeed struct {
	ListID string     `json:"list_id"`
	Items  []ItemSeed `json:"items"`
}

type CatalogSeed struct {
	Stores []StoreSeed `json:"stores"`
	Lists  []ListSeed  `json:"lists"`
}

// Populate the database with catalog data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	return SeedCatalog(context.Background(), db, data)
}

// SeedCatalog validates and writes a catalog in one transaction.
func SeedCatalog(ctx context.Context, db *sql.DB, data CatalogSeed) error {
	if err := validateSeed(data); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, s := range data.Stores {
		_, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO stores (
			store_id, position, name, distance_miles, rating,
			estimated_minutes, price_tier, lat, lon
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
		`, s.StoreID, i, s.Name, s.DistanceMiles, s.Rating, s.EstimatedMinutes, s.PriceTier, s.Lat, s.Lon)
		if err != nil {
			return fmt.Errorf("seed catalog: insert store_id=%q: %w", s.StoreID, err)
		}
	}

	now := time.Now().UTC()
	for _, l := range data.Lists {
		for i, it := range l.Items {
			_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO list_items (list_id, item_id, position, name, category, quantity, unit)
			VALUES (?, ?, ?, ?, ?, ?, ?);
			`, l.ListID, it.ItemID, i, it.Name, it.Category, it.Quantity, it.Unit)
			if err != nil {
				return fmt.Errorf("seed catalog: insert item_id=%q: %w", it.ItemID, err)
			}

			for storeID, sc := range it.Scores {
				updated := now
				if sc.UpdatedAt != nil {
					updated = sc.UpdatedAt.UTC()
				}
				_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO item_scores (
					item_id, store_id, price, price_score, distance_score,
					quality_score, time_score, composite_score, in_stock, updated_at
				)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
				`, it.ItemID, storeID, sc.Price.String(), sc.PriceScore, sc.DistanceScore,
					sc.QualityScore, sc.TimeScore, sc.CompositeScore, sc.InStock, updated.Format(time.RFC3339))
				if err != nil {
					return fmt.Errorf("seed catalog: insert score item_id=%q store_id=%q: %w", it.ItemID, storeID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

func validateSeed(data CatalogSeed) error {
	stores := make(map[string]struct{}, len(data.Stores))
	for i, s := range data.Stores {
		if strings.TrimSpace(s.StoreID) == "" {
			return fmt.Errorf("store at index %d: store_id cannot be empty", i+1)
		}
		if s.Rating < 1 || s.Rating > 5 {
			return fmt.Errorf("store %q: rating %v must be between 1 and 5", s.StoreID, s.Rating)
		}
		if s.PriceTier < 1 || s.PriceTier > 3 {
			return fmt.Errorf("store %q: price_tier %d must be between 1 and 3", s.StoreID, s.PriceTier)
		}
		stores[s.StoreID] = struct{}{}
	}

	for _, l := range data.Lists {
		if strings.TrimSpace(l.ListID) == "" {
			return errors.New("list_id cannot be empty")
		}
		for i, it := range l.Items {
			if strings.TrimSpace(it.ItemID) == "" {
				return fmt.Errorf("list %q item at index %d: item_id cannot be empty", l.ListID, i+1)
			}
			for storeID, sc := range it.Scores {
				if _, ok := stores[storeID]; !ok {
					return fmt.Errorf("item %q: score for unknown store %q", it.ItemID, storeID)
				}
				if sc.Price.IsNegative() {
					return fmt.Errorf("item %q store %q: negative price", it.ItemID, storeID)
				}
				for _, v := range []float64{sc.PriceScore, sc.DistanceScore, sc.QualityScore, sc.TimeScore} {
					if v < 0 || v > 100 {
						return fmt.Errorf("item %q store %q: sub-score %v outside 0..100", it.ItemID, storeID, v)
					}
				}
			}
		}
	}
	return nil
}
