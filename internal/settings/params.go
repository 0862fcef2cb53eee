// Package settings resolves the tunable scheduling inputs of one run: the
// named parameters, the revision-count table and the daily availability.
package settings

import (
	"errors"
	"fmt"
	"sort"
)

// Parameter keys as stored in the parameters table.
const (
	KeyMinDuration   = "duree_min"
	KeyMaxDuration   = "duree_max"
	KeyMaxPerDay     = "nb_max_par_j"
	KeyMinPerDay     = "nb_min_par_j"
	KeyLowThreshold  = "seuil_fail"
	KeyHighThreshold = "seuil_ok"
	KeyLowBonusDays  = "bonus_fail"
	KeyHighBonusDays = "bonus_ok"
	KeyBreakMinutes  = "temps_pause"
	KeyMinGapDays    = "ecart_min_j"
)

// ErrInvalidParameters is returned when a parameter snapshot is inconsistent.
var ErrInvalidParameters = errors.New("settings: invalid parameters")

// ParamError names the parameter that failed validation.
type ParamError struct {
	Key    string
	Value  int
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s = %d: %s", e.Key, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameters }

// Params is the immutable parameter snapshot used by one scheduling run.
type Params struct {
	MinDuration int // minutes
	MaxDuration int // minutes
	MaxPerDay   int
	MinPerDay   int

	// Thresholds are percentages of the score total.
	LowThreshold  int
	HighThreshold int

	LowBonusDays  int
	HighBonusDays int
	BreakMinutes  int
	MinGapDays    int
}

// DefaultValues are the parameter values seeded into an empty store and
// used for any key missing from it.
var DefaultValues = map[string]int{
	KeyMinDuration:   30,
	KeyMaxDuration:   70,
	KeyMaxPerDay:     5,
	KeyMinPerDay:     1,
	KeyLowThreshold:  60,
	KeyHighThreshold: 85,
	KeyLowBonusDays:  -2,
	KeyHighBonusDays: 2,
	KeyBreakMinutes:  10,
	KeyMinGapDays:    2,
}

// Descriptions documents each parameter for listings.
var Descriptions = map[string]string{
	KeyMinDuration:   "Minimum session duration (minutes)",
	KeyMaxDuration:   "Maximum session duration (minutes)",
	KeyMaxPerDay:     "Maximum sessions per day",
	KeyMinPerDay:     "Minimum sessions per day (informational)",
	KeyLowThreshold:  "Score percentage below which a remedial session is added",
	KeyHighThreshold: "Score percentage at or above which the next session is spaced out",
	KeyLowBonusDays:  "Day offset after a low score (magnitude = delay before the remedial session)",
	KeyHighBonusDays: "Days the next session moves after a high score",
	KeyBreakMinutes:  "Break between two sessions (informational)",
	KeyMinGapDays:    "Minimum days between two sessions of a course when rebalancing",
}

// DefaultParams returns the snapshot built from DefaultValues.
func DefaultParams() Params {
	p, _ := Resolve(nil)
	return p
}

// Resolve builds a snapshot from raw stored values, falling back to
// DefaultValues for missing keys. Unknown keys are ignored.
func Resolve(raw map[string]int) (Params, error) {
	get := func(key string) int {
		if v, ok := raw[key]; ok {
			return v
		}
		return DefaultValues[key]
	}

	p := Params{
		MinDuration:   get(KeyMinDuration),
		MaxDuration:   get(KeyMaxDuration),
		MaxPerDay:     get(KeyMaxPerDay),
		MinPerDay:     get(KeyMinPerDay),
		LowThreshold:  get(KeyLowThreshold),
		HighThreshold: get(KeyHighThreshold),
		LowBonusDays:  get(KeyLowBonusDays),
		HighBonusDays: get(KeyHighBonusDays),
		BreakMinutes:  get(KeyBreakMinutes),
		MinGapDays:    get(KeyMinGapDays),
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the snapshot for values the engine cannot work with.
func (p Params) Validate() error {
	switch {
	case p.MinDuration <= 0:
		return &ParamError{KeyMinDuration, p.MinDuration, "must be positive"}
	case p.MaxDuration < p.MinDuration:
		return &ParamError{KeyMaxDuration, p.MaxDuration, fmt.Sprintf("must be at least %s (%d)", KeyMinDuration, p.MinDuration)}
	case p.MaxPerDay <= 0:
		return &ParamError{KeyMaxPerDay, p.MaxPerDay, "must be positive"}
	case p.MinPerDay < 0:
		return &ParamError{KeyMinPerDay, p.MinPerDay, "must not be negative"}
	case p.LowThreshold < 0 || p.LowThreshold > 100:
		return &ParamError{KeyLowThreshold, p.LowThreshold, "must be a percentage"}
	case p.HighThreshold < 0 || p.HighThreshold > 100:
		return &ParamError{KeyHighThreshold, p.HighThreshold, "must be a percentage"}
	case p.HighThreshold < p.LowThreshold:
		return &ParamError{KeyHighThreshold, p.HighThreshold, fmt.Sprintf("must be at least %s (%d)", KeyLowThreshold, p.LowThreshold)}
	case p.HighBonusDays < 0:
		return &ParamError{KeyHighBonusDays, p.HighBonusDays, "must not be negative"}
	case p.BreakMinutes < 0:
		return &ParamError{KeyBreakMinutes, p.BreakMinutes, "must not be negative"}
	case p.MinGapDays < 0:
		return &ParamError{KeyMinGapDays, p.MinGapDays, "must not be negative"}
	}
	return nil
}

// DefaultDailyMinutes is the capacity of a day with no availability entry.
func (p Params) DefaultDailyMinutes() int {
	return p.MaxPerDay * p.MaxDuration
}

// IsLow reports whether raw/total falls below the low threshold.
func (p Params) IsLow(raw, total int) bool {
	return raw*100 < p.LowThreshold*total
}

// IsHigh reports whether raw/total reaches the high threshold.
func (p Params) IsHigh(raw, total int) bool {
	return raw*100 >= p.HighThreshold*total
}

// RemedialDelayDays is how long after an evaluation a remedial session is
// targeted: the magnitude of the low-score bonus.
func (p Params) RemedialDelayDays() int {
	if p.LowBonusDays < 0 {
		return -p.LowBonusDays
	}
	return p.LowBonusDays
}

// Keys returns the known parameter keys in a stable order.
func Keys() []string {
	keys := make([]string, 0, len(DefaultValues))
	for k := range DefaultValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognised parameter.
func IsKnown(key string) bool {
	_, ok := DefaultValues[key]
	return ok
}
