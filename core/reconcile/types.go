package reconcile

import (
	"encoding/json"
	"fmt"

	"material-manager/core/material"
)

// MatchStatus classifies the outcome for a single sampler slot.
type MatchStatus int

const (
	// StatusPerfectMatch means slot index and base type both matched.
	StatusPerfectMatch MatchStatus = iota

	// StatusAdjacentMatch means the base type matched but the slot
	// index did not, or the match required an order adjustment.
	StatusAdjacentMatch

	// StatusUnmatched means no target slot could take the source
	// sampler.
	StatusUnmatched

	// StatusUncovered flags a target path that no source sampler
	// covers. The engine reports this condition through warnings;
	// the status exists for presentation layers that render target
	// slots.
	StatusUncovered

	// StatusEmpty marks a source sampler that carries no path and was
	// skipped.
	StatusEmpty
)

// String returns the canonical status code.
func (s MatchStatus) String() string {
	switch s {
	case StatusPerfectMatch:
		return "PERFECT_MATCH"
	case StatusAdjacentMatch:
		return "ADJACENT_MATCH"
	case StatusUnmatched:
		return "UNMATCHED"
	case StatusUncovered:
		return "UNCOVERED"
	case StatusEmpty:
		return "EMPTY"
	default:
		return fmt.Sprintf("MatchStatus(%d)", int(s))
	}
}

// Icon returns the marker shown next to the status in match tables.
func (s MatchStatus) Icon() string {
	switch s {
	case StatusPerfectMatch:
		return "🟢"
	case StatusAdjacentMatch:
		return "🟡"
	case StatusUnmatched:
		return "🔴"
	case StatusUncovered:
		return "🔵"
	case StatusEmpty:
		return "⚪"
	default:
		return ""
	}
}

// MarshalJSON renders the status as its canonical code.
func (s MatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// NoTarget is the TargetPos value of a result that claimed no slot.
const NoTarget = -1

// MatchResult records where one source sampler landed.
type MatchResult struct {
	// SourcePos is the sampler's position in the source material.
	SourcePos int `json:"source_pos"`

	// TargetPos is the claimed position in the target material, or
	// NoTarget when the sampler found no slot.
	TargetPos int `json:"target_pos"`

	// Status classifies the match.
	Status MatchStatus `json:"status"`

	// Reason explains the match in human-readable form. It is never
	// consulted by logic and may be stale after an order repair moved
	// the match.
	Reason string `json:"reason"`

	// OrderAdjusted reports whether an adjustment or repair touched
	// this match.
	OrderAdjusted bool `json:"order_adjusted"`

	// AdjustmentDetail describes the adjustments that touched this
	// match.
	AdjustmentDetail string `json:"adjustment_detail"`
}

// ReplaceResult is the full outcome of one Replace call.
type ReplaceResult struct {
	// Source and Target echo the materials the call received.
	Source material.Material `json:"-"`
	Target material.Material `json:"-"`

	// Results holds exactly one entry per source sampler, ordered by
	// SourcePos ascending from zero.
	Results []MatchResult `json:"results"`

	// Warnings lists advisory conditions such as uncovered target
	// paths. Warnings never block applying the result.
	Warnings []string `json:"warnings"`

	// OrderAdjustments counts the local adjustments spent during
	// matching. Never exceeds the configured budget.
	OrderAdjustments int32 `json:"order_adjustments_count"`

	// GlobalRepairTriggered reports whether the order repair pass
	// swapped at least one pair.
	GlobalRepairTriggered bool `json:"global_repair_triggered"`
}
