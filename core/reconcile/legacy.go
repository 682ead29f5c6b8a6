package reconcile

import (
	"fmt"

	"material-manager/core/material"
	"material-manager/core/sampler"

	"go.uber.org/zap"
)

// replaceLegacy matches legacy source samplers outside the standard
// pipeline. Legacy names carry no slot index, so sources are walked in
// original order and matched by name, falling back to the declared
// cross-generation candidates when the target has modern slots.
func (e *Engine) replaceLegacy(source, target material.Material, targetHasModern bool) *ReplaceResult {
	warnings := []string{}
	results := make([]MatchResult, 0, len(source.Samplers))

	sortedTarget := indexSamplers(target.Samplers)
	sortByIndex(sortedTarget)

	// Occupancy is keyed by original target position here.
	occupied := make(map[int]struct{}, len(target.Samplers))

	for srcPos, src := range source.Samplers {
		if !src.HasPath() {
			results = append(results, MatchResult{
				SourcePos: srcPos,
				TargetPos: NoTarget,
				Status:    StatusEmpty,
				Reason:    "source sampler has no path, skipped",
			})
			continue
		}
		if !src.IsLegacy {
			// Should not occur once the legacy branch triggers, but a
			// mixed source degrades to unmatched instead of crashing.
			results = append(results, MatchResult{
				SourcePos: srcPos,
				TargetPos: NoTarget,
				Status:    StatusUnmatched,
				Reason:    "not a legacy sampler, skipped legacy matching",
			})
			continue
		}

		matchedPos := NoTarget
		status := StatusUnmatched
		reason := ""

		// Same-generation pass: identical legacy base types.
		for _, t := range sortedTarget {
			if _, taken := occupied[t.origPos]; taken {
				continue
			}
			if t.sampler.IsLegacy && t.sampler.BaseType == src.BaseType {
				matchedPos = t.origPos
				status = StatusPerfectMatch
				reason = fmt.Sprintf("legacy name match: %s", src.BaseType)
				break
			}
		}

		// Cross-generation pass over the declared candidate order.
		if matchedPos == NoTarget && targetHasModern {
			for _, modern := range sampler.ModernCandidates(src.BaseType) {
				for _, t := range sortedTarget {
					if _, taken := occupied[t.origPos]; taken {
						continue
					}
					if !t.sampler.IsLegacy && t.sampler.BaseType == modern {
						matchedPos = t.origPos
						status = StatusAdjacentMatch
						reason = fmt.Sprintf("cross-generation mapping: %s -> %s", src.BaseType, modern)
						break
					}
				}
				if matchedPos != NoTarget {
					break
				}
			}
		}

		if matchedPos == NoTarget {
			results = append(results, MatchResult{
				SourcePos: srcPos,
				TargetPos: NoTarget,
				Status:    StatusUnmatched,
				Reason:    fmt.Sprintf("no matching target for legacy sampler %s", src.BaseType),
			})
			warnings = append(warnings, fmt.Sprintf("source sampler %s unmatched", src.BaseType))
			continue
		}

		occupied[matchedPos] = struct{}{}
		results = append(results, MatchResult{
			SourcePos: srcPos,
			TargetPos: matchedPos,
			Status:    status,
			Reason:    reason,
		})
		e.log.Debug("legacy sampler matched",
			zap.Int("source_pos", srcPos),
			zap.String("base_type", src.BaseType),
			zap.Int("target_pos", matchedPos),
			zap.Stringer("status", status),
		)
	}

	warnings = appendUncoveredWarnings(warnings, target.Samplers, occupied)

	return &ReplaceResult{
		Source:                source,
		Target:                target,
		Results:               results,
		Warnings:              warnings,
		OrderAdjustments:      0,
		GlobalRepairTriggered: false,
	}
}
