package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "shopping:plan-state:"

// Redis backed store for the user-driven part of a plan.
// Entries never expire unless TTL is set.
type RedisPlanStateCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisPlanStateCache(client *redis.Client) *RedisPlanStateCache {
	return &RedisPlanStateCache{Client: client, Prefix: defaultKeyPrefix}
}

type planStateRecord struct {
	Price    int               `json:"price"`
	Distance int               `json:"distance"`
	Quality  int               `json:"quality"`
	Time     int               `json:"time"`
	Preset   string            `json:"preset"`
	Pins     map[string]string `json:"pins,omitempty"`
}

func (c *RedisPlanStateCache) key(listID string) string {
	return c.Prefix + listID
}

// Store the state for one shopping list, replacing any previous value.
func (c *RedisPlanStateCache) SaveState(ctx context.Context, listID string, state ports.PlanState) error {
	if c.Client == nil {
		return errors.New("plan state cache: client is nil")
	}
	if strings.TrimSpace(listID) == "" {
		return errors.New("save plan state: list id must not be empty")
	}

	w := state.Weights
	payload, err := json.Marshal(planStateRecord{
		Price:    w.Price,
		Distance: w.Distance,
		Quality:  w.Quality,
		Time:     w.Time,
		Preset:   string(w.Preset),
		Pins:     state.Pins,
	})
	if err != nil {
		return fmt.Errorf("save plan state %q: encode: %w", listID, err)
	}

	if err := c.Client.Set(ctx, c.key(listID), payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("save plan state %q: redis set: %w", listID, err)
	}
	return nil
}

// Fetch the state for one shopping list. A missing key is not an error.
func (c *RedisPlanStateCache) LoadState(ctx context.Context, listID string) (ports.PlanState, bool, error) {
	if c.Client == nil {
		return ports.PlanState{}, false, errors.New("plan state cache: client is nil")
	}

	payload, err := c.Client.Get(ctx, c.key(listID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.PlanState{}, false, nil
	}
	if err != nil {
		return ports.PlanState{}, false, fmt.Errorf("load plan state %q: redis get: %w", listID, err)
	}

	var rec planStateRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return ports.PlanState{}, false, fmt.Errorf("load plan state %q: decode: %w", listID, err)
	}

	w := domain.PreferenceWeights{
		Price:    rec.Price,
		Distance: rec.Distance,
		Quality:  rec.Quality,
		Time:     rec.Time,
		Preset:   domain.PresetName(rec.Preset),
	}
	if err := w.Validate(); err != nil {
		return ports.PlanState{}, false, fmt.Errorf("load plan state %q: %w", listID, err)
	}

	pins := rec.Pins
	if pins == nil {
		pins = map[string]string{}
	}
	return ports.PlanState{Weights: w, Pins: pins}, true, nil
}
