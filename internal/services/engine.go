package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/platform/obs"
	"shopping-route-service/internal/ports"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrSuperseded is reported by an asynchronous recalculation whose result was
// discarded because a newer mutation or recalculation was issued meanwhile.
var ErrSuperseded = errors.New("recalculation superseded")

type EngineConfig struct {
	ListID           string
	Start            domain.Coordinates
	Planner          RoutePlannerConfig
	SimulatedLatency time.Duration
}

// EngineDeps are the collaborators of an Engine. Distance is required; the rest
// are optional and skipped when nil.
type EngineDeps struct {
	Distance   ports.DistanceProvider
	Sessions   ports.SessionRepository
	StateCache ports.PlanStateCache
	Logger     *zerolog.Logger
	Now        func() time.Time
}

// Plan is a read-only snapshot of one optimization pass.
type Plan struct {
	Generation   uint64
	CalculatedAt time.Time
	Weights      domain.PreferenceWeights
	Items        []*domain.OptimizedItem
	Assignment   domain.Assignment
	Savings      domain.SavingsReport
	Route        *domain.Route
	Warnings     []Warning
}

// Engine wires the weight manager, optimizer, savings calculator, route planner
// and session tracker around one shopping list.
//
// Mutations are serialized and each one bumps a generation counter. An
// asynchronous recalculation only lands if its generation is still the latest
// issued; otherwise its result is dropped.
type Engine struct {
	mu sync.Mutex

	cfg      EngineConfig
	stores   []domain.Store
	items    []*domain.OptimizedItem
	weights  *WeightManager
	planner  *RoutePlanner
	tracker  *SessionTracker
	archive  ports.SessionRepository
	cache    ports.PlanStateCache
	log      zerolog.Logger
	now      func() time.Time
	plan     *Plan
	issued   uint64
	inFlight atomic.Bool
}

func NewEngine(
	ctx context.Context,
	cfg EngineConfig,
	deps EngineDeps,
	stores []domain.Store,
	items []*domain.OptimizedItem,
	initial domain.PreferenceWeights,
) (*Engine, error) {
	planner, err := NewRoutePlanner(cfg.Planner, deps.Distance)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	wm, err := NewWeightManager(initial)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = deps.Logger.With().Str("list_id", cfg.ListID).Logger()
	}

	e := &Engine{
		cfg:     cfg,
		stores:  append([]domain.Store(nil), stores...),
		items:   items,
		weights: wm,
		planner: planner,
		tracker: NewSessionTracker(now),
		archive: deps.Sessions,
		cache:   deps.StateCache,
		log:     logger,
		now:     now,
	}

	if _, err := e.Recalculate(ctx); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return e, nil
}

// LoadEngine reads the list from the catalog, restores cached weights and pins,
// and runs the first pass.
func LoadEngine(ctx context.Context, cfg EngineConfig, deps EngineDeps, catalog ports.CatalogProvider) (*Engine, error) {
	stores, err := catalog.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load engine: list stores: %w", err)
	}
	items, err := catalog.ListItems(ctx, cfg.ListID)
	if err != nil {
		return nil, fmt.Errorf("load engine: list items: %w", err)
	}

	weights := domain.DefaultWeights()
	if deps.StateCache != nil {
		state, ok, err := deps.StateCache.LoadState(ctx, cfg.ListID)
		switch {
		case err != nil:
			// A cold cache must not block planning.
			if deps.Logger != nil {
				deps.Logger.Warn().Err(err).Str("list_id", cfg.ListID).Msg("plan state not restored")
			}
		case ok:
			if state.Weights.Validate() == nil {
				weights = state.Weights
			}
			restorePins(items, stores, state.Pins)
		}
	}

	return NewEngine(ctx, cfg, deps, stores, items, weights)
}

func restorePins(items []*domain.OptimizedItem, stores []domain.Store, pins map[string]string) {
	for itemID, storeID := range pins {
		it, ok := domain.FindItem(items, itemID)
		if !ok {
			continue
		}
		score, ok := it.Scores[storeID]
		if !ok {
			continue
		}
		it.AssignedStoreID = storeID
		it.AssignedStoreName = storeID
		if s, ok := domain.FindStore(stores, storeID); ok {
			it.AssignedStoreName = s.Name
		}
		it.AssignedPrice = score.Price
		it.ManuallyAssigned = true
	}
}

// compute runs a full pass over items. items are mutated in place.
func (e *Engine) compute(ctx context.Context, items []*domain.OptimizedItem, w domain.PreferenceWeights) (_ *Plan, err error) {
	defer obs.Time(ctx, "engine.compute")(&err)

	res, err := AssignItems(items, e.stores, w)
	if err != nil {
		return nil, err
	}
	savings := CalculateSavings(items)

	route, err := e.planner.PlanRoute(PlanRouteRequest{
		Stores:     e.stores,
		Assignment: res.Assignment,
		Items:      items,
		Start:      e.cfg.Start,
		DepartAt:   e.now(),
		Savings:    savings.Total,
	})
	if err != nil {
		return nil, err
	}

	return &Plan{
		CalculatedAt: e.now(),
		Weights:      w,
		Items:        items,
		Assignment:   res.Assignment,
		Savings:      savings,
		Route:        route,
		Warnings:     res.Warnings,
	}, nil
}

// Recalculate runs a synchronous pass and supersedes any pass in flight.
func (e *Engine) Recalculate(ctx context.Context) (*Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recalculateLocked(ctx)
}

func (e *Engine) recalculateLocked(ctx context.Context) (*Plan, error) {
	e.issued++
	plan, err := e.compute(ctx, e.items, e.weights.Current())
	if err != nil {
		return nil, fmt.Errorf("recalculate: %w", err)
	}
	plan.Generation = e.issued
	e.plan = plan
	e.logPlan(plan)
	return e.snapshotLocked(), nil
}

// TriggerRecalculation starts an asynchronous pass on a snapshot of the current
// inputs. It returns started=false without doing anything while another
// triggered pass is still running. The channel receives nil when the result was
// applied, ErrSuperseded when it was discarded, or the pass error.
func (e *Engine) TriggerRecalculation(ctx context.Context) (<-chan error, bool) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, false
	}

	e.mu.Lock()
	e.issued++
	gen := e.issued
	items := make([]*domain.OptimizedItem, len(e.items))
	for i, it := range e.items {
		items[i] = it.Clone()
	}
	weights := e.weights.Current()
	e.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer e.inFlight.Store(false)
		done <- e.runAsync(ctx, gen, items, weights)
	}()
	return done, true
}

func (e *Engine) runAsync(ctx context.Context, gen uint64, items []*domain.OptimizedItem, w domain.PreferenceWeights) error {
	if e.cfg.SimulatedLatency > 0 {
		timer := time.NewTimer(e.cfg.SimulatedLatency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	plan, err := e.compute(ctx, items, w)
	if err != nil {
		return fmt.Errorf("recalculate async: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.issued {
		e.log.Debug().Uint64("generation", gen).Uint64("latest", e.issued).Msg("discarding superseded recalculation")
		return ErrSuperseded
	}
	plan.Generation = gen
	e.items = items
	e.plan = plan
	e.logPlan(plan)
	return nil
}

// Calculating reports whether a triggered pass is still running.
func (e *Engine) Calculating() bool {
	return e.inFlight.Load()
}

func (e *Engine) logPlan(p *Plan) {
	for _, w := range p.Warnings {
		e.log.Warn().Str("code", w.Code).Str("item_id", w.ItemID).Str("store_id", w.StoreID).Msg(w.Message)
	}
	e.log.Info().
		Uint64("generation", p.Generation).
		Int("stops", len(p.Route.Stops)).
		Str("spend", p.Route.TotalSpend.StringFixed(2)).
		Str("savings", p.Savings.Total.StringFixed(2)).
		Msg("plan updated")
}

// Plan returns a copy of the latest applied plan.
func (e *Engine) Plan() *Plan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() *Plan {
	p := *e.plan
	p.Items = make([]*domain.OptimizedItem, len(e.plan.Items))
	for i, it := range e.plan.Items {
		p.Items[i] = it.Clone()
	}
	p.Assignment = e.plan.Assignment.Clone()
	p.Savings.PerStore = maps.Clone(e.plan.Savings.PerStore)
	p.Warnings = append([]Warning(nil), e.plan.Warnings...)
	return &p
}

func (e *Engine) Stores() []domain.Store {
	return append([]domain.Store(nil), e.stores...)
}

func (e *Engine) Weights() domain.PreferenceWeights {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weights.Current()
}

// ApplyPreset switches to a named preset and recalculates. An unknown preset
// leaves everything unchanged and reports applied=false.
func (e *Engine) ApplyPreset(ctx context.Context, name domain.PresetName) (plan *Plan, applied bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.weights.ApplyPreset(name) {
		return e.snapshotLocked(), false, nil
	}
	plan, err = e.recalculateLocked(ctx)
	if err != nil {
		return nil, true, err
	}
	e.saveStateLocked(ctx)
	return plan, true, nil
}

func (e *Engine) SetWeight(ctx context.Context, c domain.Criterion, value float64) (*Plan, error) {
	return e.mutate(ctx, func() error { return e.weights.SetWeight(c, value) })
}

func (e *Engine) SetVector(ctx context.Context, w domain.PreferenceWeights) (*Plan, error) {
	return e.mutate(ctx, func() error { return e.weights.SetVector(w) })
}

// MoveItem pins an item to toStoreID and recalculates around the pin.
func (e *Engine) MoveItem(ctx context.Context, itemID, fromStoreID, toStoreID string) (*Plan, error) {
	return e.mutate(ctx, func() error {
		return MoveItem(e.items, e.stores, e.plan.Assignment, itemID, fromStoreID, toStoreID)
	})
}

// ResetManualAssignment unpins an item and lets the optimizer re-score it.
func (e *Engine) ResetManualAssignment(ctx context.Context, itemID string) (*Plan, error) {
	return e.mutate(ctx, func() error { return ResetManualAssignment(e.items, itemID) })
}

func (e *Engine) mutate(ctx context.Context, fn func() error) (*Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(); err != nil {
		return nil, err
	}
	plan, err := e.recalculateLocked(ctx)
	if err != nil {
		return nil, err
	}
	e.saveStateLocked(ctx)
	return plan, nil
}

func (e *Engine) saveStateLocked(ctx context.Context) {
	if e.cache == nil {
		return
	}
	pins := make(map[string]string)
	for _, it := range e.items {
		if it.ManuallyAssigned && it.IsAssigned() {
			pins[it.ID] = it.AssignedStoreID
		}
	}
	state := ports.PlanState{Weights: e.weights.Current(), Pins: pins}
	if err := e.cache.SaveState(ctx, e.cfg.ListID, state); err != nil {
		e.log.Warn().Err(err).Msg("plan state not saved")
	}
}

// StartShopping opens a session for storeID from its current bucket.
func (e *Engine) StartShopping(ctx context.Context, storeID string) (*domain.ShoppingSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	store, ok := domain.FindStore(e.stores, storeID)
	if !ok {
		return nil, fmt.Errorf("start shopping %q: %w", storeID, domain.ErrStoreNotFound)
	}

	bucket := make([]*domain.OptimizedItem, 0, e.plan.Assignment.Count(storeID))
	for _, id := range e.plan.Assignment[storeID] {
		if it, ok := domain.FindItem(e.items, id); ok {
			bucket = append(bucket, it)
		}
	}

	s, err := e.tracker.Start(store, bucket)
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("store_id", storeID).Str("session_id", s.ID).Int("items", len(s.Items)).Msg("shopping started")
	return s.Clone(), nil
}

func (e *Engine) ToggleChecked(storeID, itemID string) (*domain.ShoppingSession, error) {
	return e.sessionAction(storeID, func() error { return e.tracker.ToggleChecked(storeID, itemID) })
}

func (e *Engine) MarkUnavailable(storeID, itemID, substituteID, substituteName string) (*domain.ShoppingSession, error) {
	return e.sessionAction(storeID, func() error {
		return e.tracker.MarkUnavailable(storeID, itemID, substituteID, substituteName)
	})
}

func (e *Engine) UpdateActualPrice(storeID, itemID string, price decimal.Decimal) (*domain.ShoppingSession, error) {
	return e.sessionAction(storeID, func() error { return e.tracker.UpdateActualPrice(storeID, itemID, price) })
}

func (e *Engine) sessionAction(storeID string, fn func() error) (*domain.ShoppingSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(); err != nil {
		return nil, err
	}
	s, _ := e.tracker.Session(storeID)
	return s, nil
}

// CompleteShopping finalizes the store's session and archives it. An archive
// failure is logged; the session stays completed in memory.
func (e *Engine) CompleteShopping(ctx context.Context, storeID, receiptRef string) (*domain.ShoppingSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.tracker.Complete(storeID, receiptRef)
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Str("store_id", storeID).
		Str("session_id", s.ID).
		Str("actual_total", s.ActualTotal.StringFixed(2)).
		Msg("shopping completed")

	if e.archive != nil {
		if err := e.archive.SaveSession(ctx, s); err != nil {
			e.log.Error().Err(err).Str("session_id", s.ID).Msg("archive session failed")
		}
	}
	return s.Clone(), nil
}

// Session returns a copy of the store's session.
func (e *Engine) Session(storeID string) (*domain.ShoppingSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Session(storeID)
}

// ActiveSession returns a copy of the session the user is currently in.
func (e *Engine) ActiveSession() (*domain.ShoppingSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Active()
}
