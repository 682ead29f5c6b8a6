package reconcile

import (
	"fmt"

	"material-manager/core/material"

	"go.uber.org/zap"
)

// Engine performs sampler reconciliation between two materials.
// The adjustment budget and occupancy state live in a per-call scratch
// structure, so a single Engine is safe to reuse sequentially.
type Engine struct {
	opts material.ConversionOptions
	log  *zap.Logger
}

// NewEngine builds an engine with the given options. A nil logger
// disables engine logging.
func NewEngine(opts material.ConversionOptions, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{opts: opts, log: log}
}

// Replace computes the slot mapping from source onto target.
//
// When the source contains legacy samplers with paths, the dedicated
// legacy branch handles the whole call. Otherwise the standard
// sort-match-restore pipeline runs. Replace never fails; every source
// sampler receives a result.
func (e *Engine) Replace(source, target material.Material) *ReplaceResult {
	legacyCount := 0
	for _, s := range source.Samplers {
		if s.IsLegacy && s.HasPath() {
			legacyCount++
		}
	}
	if legacyCount > 0 {
		targetHasModern := false
		targetHasLegacy := false
		for _, t := range target.Samplers {
			if !t.IsLegacy && t.Index >= 0 {
				targetHasModern = true
			}
			if t.IsLegacy {
				targetHasLegacy = true
			}
		}
		e.log.Debug("legacy source detected",
			zap.String("source", source.Name),
			zap.Int("legacy_samplers", legacyCount),
			zap.Bool("target_has_modern", targetHasModern),
			zap.Bool("target_has_legacy", targetHasLegacy),
		)
		return e.replaceLegacy(source, target, targetHasModern)
	}

	st := newMatchState(e.opts, e.log, source, target)
	e.log.Debug("sorted inputs",
		zap.String("source", source.Name),
		zap.String("target", target.Name),
		zap.Int("source_with_path", len(st.sortedSource)),
		zap.Int("targets", len(st.sortedTarget)),
	)

	// Match every pathed source sampler in sorted order. matchSingle
	// reports the claimed slot as a sorted index; rebind it to the
	// target's original position and mark the slot taken.
	for sortedSrcIdx, src := range st.sortedSource {
		res := st.matchSingle(sortedSrcIdx, src.origPos, src.sampler)
		if res.TargetPos != NoTarget {
			tIdx := res.TargetPos
			res.TargetPos = st.sortedTarget[tIdx].origPos
			st.occupied[tIdx] = true
			st.matchOfTarget[tIdx] = sortedSrcIdx
		}
		st.results = append(st.results, res)

		e.log.Debug("source sampler matched",
			zap.Int("source_pos", src.origPos),
			zap.Int32("source_index", src.sampler.Index),
			zap.String("base_type", src.sampler.BaseType),
			zap.Int("target_pos", res.TargetPos),
			zap.Stringer("status", res.Status),
		)
	}

	// Restore the original source order. Samplers that carried no path
	// never entered the match and become EMPTY entries here.
	bySource := make(map[int]MatchResult, len(st.results))
	for _, r := range st.results {
		bySource[r.SourcePos] = r
	}
	results := make([]MatchResult, 0, len(source.Samplers))
	for pos := range source.Samplers {
		if r, ok := bySource[pos]; ok {
			results = append(results, r)
			continue
		}
		results = append(results, MatchResult{
			SourcePos: pos,
			TargetPos: NoTarget,
			Status:    StatusEmpty,
			Reason:    "source sampler has no path, skipped",
		})
	}

	warnings := []string{}
	repairTriggered := false
	if e.opts.StrictOrderValidation {
		repairTriggered = e.globalOrderRepair(source.Samplers, target.Samplers, results)
		if repairTriggered {
			warnings = append(warnings, "global order repair triggered")
		}
	}

	covered := make(map[int]struct{}, len(results))
	for _, r := range results {
		if r.TargetPos != NoTarget {
			covered[r.TargetPos] = struct{}{}
		}
	}
	warnings = appendUncoveredWarnings(warnings, target.Samplers, covered)

	return &ReplaceResult{
		Source:                source,
		Target:                target,
		Results:               results,
		Warnings:              warnings,
		OrderAdjustments:      st.adjustments,
		GlobalRepairTriggered: repairTriggered,
	}
}

// appendUncoveredWarnings records every target sampler whose path is
// kept but whose position was never claimed.
func appendUncoveredWarnings(warnings []string, targets []material.Sampler, covered map[int]struct{}) []string {
	for i, t := range targets {
		if _, ok := covered[i]; ok {
			continue
		}
		if t.HasPath() {
			warnings = append(warnings, fmt.Sprintf("target sampler #%d (%s) not covered", i, t.BaseType))
		}
	}
	return warnings
}
