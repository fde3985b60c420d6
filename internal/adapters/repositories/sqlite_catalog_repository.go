package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/platform/obs"
	"time"

	"github.com/shopspring/decimal"
)

// SQLite-backed implementation of the CatalogProvider port.
type SqliteCatalogRepository struct{ DB *sql.DB }

func NewSqliteCatalogRepository(db *sql.DB) *SqliteCatalogRepository {
	return &SqliteCatalogRepository{DB: db}
}

// Return all stores in seed order.
func (s *SqliteCatalogRepository) ListStores(ctx context.Context) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "catalog.ListStores")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		store_id,
		name,
		distance_miles,
		rating,
		estimated_minutes,
		price_tier,
		lat,
		lon
	FROM stores
	ORDER BY position, store_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0, 16)
	for rows.Next() {
		var st domain.Store
		err := rows.Scan(
			&st.ID, &st.Name, &st.DistanceMiles, &st.Rating,
			&st.EstimatedMinutes, &st.PriceTier, &st.Location.Lat, &st.Location.Lon,
		)
		if err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		stores = append(stores, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}

	return stores, nil
}

// Return the items of a list, in list order, each with its score map.
func (s *SqliteCatalogRepository) ListItems(ctx context.Context, listID string) (_ []*domain.OptimizedItem, err error) {
	defer obs.Time(ctx, "catalog.ListItems")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite catalog repository: DB is nil")
	}

	query := `
	SELECT
		li.item_id,
		li.name,
		li.category,
		li.quantity,
		li.unit,
		sc.store_id,
		sc.price,
		sc.price_score,
		sc.distance_score,
		sc.quality_score,
		sc.time_score,
		sc.composite_score,
		sc.in_stock,
		sc.updated_at
	FROM list_items li
	LEFT JOIN item_scores sc ON sc.item_id = li.item_id
	WHERE li.list_id = ?
	ORDER BY li.position, sc.store_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: query list_items table: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.OptimizedItem, 0, 32)
	byID := make(map[string]*domain.OptimizedItem)
	for rows.Next() {
		var (
			it                   domain.OptimizedItem
			storeID, price, upd  sql.NullString
			ps, ds, qs, ts, comp sql.NullFloat64
			inStock              sql.NullBool
		)
		err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Unit,
			&storeID, &price, &ps, &ds, &qs, &ts, &comp, &inStock, &upd,
		)
		if err != nil {
			return nil, fmt.Errorf("list items: scan row: %w", err)
		}

		cur, ok := byID[it.ID]
		if !ok {
			cur = &it
			cur.Scores = make(map[string]domain.StoreItemScore)
			byID[it.ID] = cur
			items = append(items, cur)
		}
		if !storeID.Valid {
			continue
		}

		p, err := decimal.NewFromString(price.String)
		if err != nil {
			return nil, fmt.Errorf("list items: item %q store %q: parse price: %w", it.ID, storeID.String, err)
		}
		updatedAt, err := time.Parse(time.RFC3339, upd.String)
		if err != nil {
			return nil, fmt.Errorf("list items: item %q store %q: parse updated_at: %w", it.ID, storeID.String, err)
		}
		cur.Scores[storeID.String] = domain.StoreItemScore{
			Price:          p,
			PriceScore:     ps.Float64,
			DistanceScore:  ds.Float64,
			QualityScore:   qs.Float64,
			TimeScore:      ts.Float64,
			CompositeScore: comp.Float64,
			InStock:        inStock.Bool,
			UpdatedAt:      updatedAt,
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: row iteration: %w", err)
	}

	return items, nil
}
