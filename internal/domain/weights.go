package domain

import (
	"fmt"
	"math"
)

// Criterion names one axis of the preference vector.
type Criterion string

const (
	CriterionPrice    Criterion = "price"
	CriterionDistance Criterion = "distance"
	CriterionQuality  Criterion = "quality"
	CriterionTime     Criterion = "time"
)

// Criteria lists the four criteria in their canonical order.
// Residual correction walks the "other three" in this order.
var Criteria = []Criterion{CriterionPrice, CriterionDistance, CriterionQuality, CriterionTime}

// PresetName tags where a weight vector came from.
type PresetName string

const (
	PresetBalanced     PresetName = "balanced"
	PresetSaveMoney    PresetName = "save-money"
	PresetSaveTime     PresetName = "save-time"
	PresetQualityFirst PresetName = "quality-first"
	PresetCustom       PresetName = "custom"
)

// WeightTotal is the fixed sum of every valid preference vector.
const WeightTotal = 100

// PreferenceWeights holds integer percentage points per criterion.
// Price+Distance+Quality+Time is always WeightTotal once a vector leaves this package.
type PreferenceWeights struct {
	Price    int
	Distance int
	Quality  int
	Time     int
	Preset   PresetName
}

var presets = map[PresetName]PreferenceWeights{
	PresetBalanced:     {Price: 25, Distance: 25, Quality: 25, Time: 25, Preset: PresetBalanced},
	PresetSaveMoney:    {Price: 50, Distance: 20, Quality: 15, Time: 15, Preset: PresetSaveMoney},
	PresetSaveTime:     {Price: 15, Distance: 30, Quality: 15, Time: 40, Preset: PresetSaveTime},
	PresetQualityFirst: {Price: 15, Distance: 15, Quality: 55, Time: 15, Preset: PresetQualityFirst},
}

// Preset returns the named preset vector.
func Preset(name PresetName) (PreferenceWeights, bool) {
	w, ok := presets[name]
	return w, ok
}

// DefaultWeights is the balanced preset.
func DefaultWeights() PreferenceWeights {
	return presets[PresetBalanced]
}

func (w PreferenceWeights) Sum() int {
	return w.Price + w.Distance + w.Quality + w.Time
}

// Get returns the value for c. Unknown criteria read as zero.
func (w PreferenceWeights) Get(c Criterion) int {
	switch c {
	case CriterionPrice:
		return w.Price
	case CriterionDistance:
		return w.Distance
	case CriterionQuality:
		return w.Quality
	case CriterionTime:
		return w.Time
	}
	return 0
}

func (w *PreferenceWeights) set(c Criterion, v int) {
	switch c {
	case CriterionPrice:
		w.Price = v
	case CriterionDistance:
		w.Distance = v
	case CriterionQuality:
		w.Quality = v
	case CriterionTime:
		w.Time = v
	}
}

// Validate checks the sum and sign invariant.
func (w PreferenceWeights) Validate() error {
	for _, c := range Criteria {
		if w.Get(c) < 0 {
			return fmt.Errorf("validate weights: %s=%d: %w", c, w.Get(c), ErrInvalidWeight)
		}
	}
	if w.Sum() != WeightTotal {
		return fmt.Errorf("validate weights: sum=%d: %w", w.Sum(), ErrInvalidWeight)
	}
	return nil
}

// ParseCriterion maps a wire name onto a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range Criteria {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("parse criterion %q: %w", s, ErrUnknownCriterion)
}

// WithCriterion sets c to value and redistributes the other three criteria
// proportionally to their prior shares so the vector still sums to WeightTotal.
//
// value is clamped to [0, WeightTotal] and rounded. When the other three were all
// zero the remainder is split equally. Rounding drift is folded into the first of
// the three with a nonzero value (or the first of the three if all are zero).
// The result is tagged PresetCustom.
func (w PreferenceWeights) WithCriterion(c Criterion, value float64) (PreferenceWeights, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return w, fmt.Errorf("set weight %s: value %v: %w", c, value, ErrInvalidWeight)
	}
	if _, err := ParseCriterion(string(c)); err != nil {
		return w, fmt.Errorf("set weight: %w", err)
	}

	v := int(math.Round(math.Max(0, math.Min(WeightTotal, value))))
	remaining := float64(WeightTotal - v)

	others := make([]Criterion, 0, len(Criteria)-1)
	priorSum := 0
	for _, o := range Criteria {
		if o == c {
			continue
		}
		others = append(others, o)
		priorSum += w.Get(o)
	}

	out := w
	out.set(c, v)
	for _, o := range others {
		var share float64
		if priorSum == 0 {
			share = remaining / float64(len(others))
		} else {
			share = float64(w.Get(o)) * remaining / float64(priorSum)
		}
		out.set(o, int(math.Round(share)))
	}

	out.applyResidual(others)
	out.Preset = PresetCustom
	return out, nil
}

// Normalized rescales an arbitrary non-negative vector onto WeightTotal with the
// same rounding and residual rule as WithCriterion.
func (w PreferenceWeights) Normalized() (PreferenceWeights, error) {
	for _, c := range Criteria {
		if w.Get(c) < 0 {
			return w, fmt.Errorf("normalize weights: %s=%d: %w", c, w.Get(c), ErrInvalidWeight)
		}
	}
	sum := w.Sum()
	if sum == 0 {
		return w, fmt.Errorf("normalize weights: all criteria are zero: %w", ErrInvalidWeight)
	}
	if sum == WeightTotal {
		return w, nil
	}

	out := w
	for _, c := range Criteria {
		out.set(c, int(math.Round(float64(w.Get(c))*WeightTotal/float64(sum))))
	}
	out.applyResidual(Criteria)
	return out, nil
}

// applyResidual restores the WeightTotal sum after rounding. The residual lands on
// the first candidate with a nonzero value; a negative residual larger than that
// value spills onto the next nonzero candidates so nothing drops below zero.
func (w *PreferenceWeights) applyResidual(candidates []Criterion) {
	residual := WeightTotal - w.Sum()
	if residual == 0 || len(candidates) == 0 {
		return
	}

	target := candidates[0]
	for _, c := range candidates {
		if w.Get(c) != 0 {
			target = c
			break
		}
	}
	if residual > 0 {
		w.set(target, w.Get(target)+residual)
		return
	}

	for _, c := range candidates {
		if residual == 0 {
			return
		}
		take := min(w.Get(c), -residual)
		w.set(c, w.Get(c)-take)
		residual += take
	}
}
