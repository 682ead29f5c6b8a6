package reconcile

import (
	"sort"

	"material-manager/core/material"

	"go.uber.org/zap"
)

// maxGlobalRepairs caps the swaps one order repair pass may apply.
// Independent of the local adjustment budget.
const maxGlobalRepairs = 3

// globalOrderRepair checks that matched target positions ascend in
// source order and swaps inverted pairs whose slot types permit it.
// Matches mutate in place. Inversions that cannot be swapped are
// marked and logged but never block the result. Repairs require
// AllowOrderAdjustment; without it the pass only reports.
//
// Returns true when at least one swap was applied.
func (e *Engine) globalOrderRepair(sources, targets []material.Sampler, results []MatchResult) bool {
	matched := make([]int, 0, len(results))
	for i := range results {
		if results[i].TargetPos != NoTarget {
			matched = append(matched, i)
		}
	}
	if len(matched) < 2 {
		return false
	}
	sort.SliceStable(matched, func(a, b int) bool {
		pa := sources[results[matched[a]].SourcePos].OriginalPosition
		pb := sources[results[matched[b]].SourcePos].OriginalPosition
		return pa < pb
	})

	repairsAllowed := e.opts.AllowOrderAdjustment
	repairCount := 0
	repaired := true

	for repaired && repairCount < maxGlobalRepairs {
		repaired = false

		for i := 0; i < len(matched)-1; i++ {
			ri := &results[matched[i]]
			rj := &results[matched[i+1]]
			if ri.TargetPos == NoTarget || rj.TargetPos == NoTarget {
				continue
			}
			if ri.TargetPos < rj.TargetPos {
				continue
			}

			// Inversion: the earlier source landed on the later slot.
			if !repairsAllowed {
				e.log.Warn("order inversion detected, adjustments disabled",
					zap.Int("source_a", ri.SourcePos),
					zap.Int("target_a", ri.TargetPos),
					zap.Int("source_b", rj.SourcePos),
					zap.Int("target_b", rj.TargetPos),
				)
				continue
			}

			srcIType := sources[ri.SourcePos].BaseType
			srcJType := sources[rj.SourcePos].BaseType
			var tgtIType, tgtJType string
			if ri.TargetPos < len(targets) {
				tgtIType = targets[ri.TargetPos].BaseType
			}
			if rj.TargetPos < len(targets) {
				tgtJType = targets[rj.TargetPos].BaseType
			}

			if srcIType == tgtJType && srcJType == tgtIType {
				ri.TargetPos, rj.TargetPos = rj.TargetPos, ri.TargetPos
				ri.OrderAdjusted = true
				rj.OrderAdjusted = true
				ri.AdjustmentDetail += " global order repair (swap)"
				rj.AdjustmentDetail += " global order repair (swap)"

				repairCount++
				repaired = true
				e.log.Debug("global order repair",
					zap.Int("source_a", ri.SourcePos),
					zap.Int("target_a", ri.TargetPos),
					zap.Int("source_b", rj.SourcePos),
					zap.Int("target_b", rj.TargetPos),
				)
				break
			}

			e.log.Warn("order conflict could not be repaired",
				zap.Int("source_a", ri.SourcePos),
				zap.Int("target_a", ri.TargetPos),
				zap.Int("source_b", rj.SourcePos),
				zap.Int("target_b", rj.TargetPos),
			)
			ri.OrderAdjusted = true
			rj.OrderAdjusted = true
			ri.AdjustmentDetail += " order conflict (unrepairable)"
			rj.AdjustmentDetail += " order conflict (unrepairable)"
		}
	}

	return repairCount > 0
}
