package reconcile

import (
	"fmt"
	"sort"

	"material-manager/core/material"

	"go.uber.org/zap"
)

// shiftWindow bounds how far ahead shiftForward may defer an occupant.
const shiftWindow = 3

// indexedSampler pairs a sampler with its original position in the
// owning material.
type indexedSampler struct {
	origPos int
	sampler material.Sampler
}

// sortByIndex orders entries by (slot index, original position)
// ascending, in place.
func sortByIndex(entries []indexedSampler) {
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].sampler.Index != entries[b].sampler.Index {
			return entries[a].sampler.Index < entries[b].sampler.Index
		}
		return entries[a].origPos < entries[b].origPos
	})
}

// indexSamplers wraps every sampler with its position.
func indexSamplers(samplers []material.Sampler) []indexedSampler {
	out := make([]indexedSampler, len(samplers))
	for i, s := range samplers {
		out[i] = indexedSampler{origPos: i, sampler: s}
	}
	return out
}

// indexSamplersWithPath wraps only the samplers that carry a path.
func indexSamplersWithPath(samplers []material.Sampler) []indexedSampler {
	out := make([]indexedSampler, 0, len(samplers))
	for i, s := range samplers {
		if s.HasPath() {
			out = append(out, indexedSampler{origPos: i, sampler: s})
		}
	}
	return out
}

// matchState is the scratch state of one Replace call. occupied and
// matchOfTarget are keyed by sorted target index; results is keyed by
// sorted source index and holds original target positions once the
// caller rebinds them.
type matchState struct {
	opts material.ConversionOptions
	log  *zap.Logger

	sortedSource []indexedSampler
	sortedTarget []indexedSampler

	occupied      []bool
	matchOfTarget map[int]int
	results       []MatchResult
	adjustments   int32
}

func newMatchState(opts material.ConversionOptions, log *zap.Logger, source, target material.Material) *matchState {
	sortedSource := indexSamplersWithPath(source.Samplers)
	sortByIndex(sortedSource)

	sortedTarget := indexSamplers(target.Samplers)
	sortByIndex(sortedTarget)

	return &matchState{
		opts:          opts,
		log:           log,
		sortedSource:  sortedSource,
		sortedTarget:  sortedTarget,
		occupied:      make([]bool, len(sortedTarget)),
		matchOfTarget: make(map[int]int, len(sortedTarget)),
		results:       make([]MatchResult, 0, len(sortedSource)),
	}
}

// matchSingle finds a slot for one source sampler, scanning the sorted
// targets from the beginning in three steps. The returned TargetPos is
// a sorted target index; the caller rebinds it. A contested perfect
// slot triggers conflict resolution before the scan moves on.
func (st *matchState) matchSingle(sortedSrcIdx, origSrcPos int, src material.Sampler) MatchResult {
	baseType := src.BaseType
	srcIndex := src.Index

	// Step 1: exact slot index and type.
	if st.opts.PreferPerfectMatch {
		for tIdx, t := range st.sortedTarget {
			if t.sampler.BaseType != baseType || t.sampler.Index != srcIndex {
				continue
			}
			if !st.occupied[tIdx] {
				return MatchResult{
					SourcePos: origSrcPos,
					TargetPos: tIdx,
					Status:    StatusPerfectMatch,
					Reason:    fmt.Sprintf("perfect match: type %s, index %d", baseType, srcIndex),
				}
			}
			if res := st.resolveConflict(sortedSrcIdx, origSrcPos, src, tIdx); res != nil {
				return *res
			}
		}
	}

	// Step 2: same type onto a slot that already carries a path.
	if st.opts.PreferMarkedCoverage {
		for tIdx, t := range st.sortedTarget {
			if t.sampler.BaseType == baseType && t.sampler.HasPath() && !st.occupied[tIdx] {
				return MatchResult{
					SourcePos: origSrcPos,
					TargetPos: tIdx,
					Status:    StatusAdjacentMatch,
					Reason:    fmt.Sprintf("marked coverage: type %s, covers existing path", baseType),
				}
			}
		}
	}

	// Step 3: any free slot of the same type.
	for tIdx, t := range st.sortedTarget {
		if t.sampler.BaseType == baseType && !st.occupied[tIdx] {
			reason := fmt.Sprintf("type match: type %s (target index %d)", baseType, t.sampler.Index)
			if !t.sampler.HasPath() {
				reason = fmt.Sprintf("fills empty slot: type %s (target index %d)", baseType, t.sampler.Index)
			}
			return MatchResult{
				SourcePos: origSrcPos,
				TargetPos: tIdx,
				Status:    StatusAdjacentMatch,
				Reason:    reason,
			}
		}
	}

	// Every direct step failed. Try relocating an occupant while the
	// adjustment budget lasts.
	if st.opts.AllowOrderAdjustment && st.adjustments < st.opts.MaxOrderAdjustments {
		if res := st.swapNeighbor(sortedSrcIdx, origSrcPos, src); res != nil {
			return *res
		}
		if res := st.shiftForward(sortedSrcIdx, origSrcPos, src); res != nil {
			return *res
		}
	}

	return MatchResult{
		SourcePos: origSrcPos,
		TargetPos: NoTarget,
		Status:    StatusUnmatched,
		Reason:    fmt.Sprintf("no available target for type %s", baseType),
	}
}

// resolveConflict frees a contested perfect slot by relocating its
// occupant to another free slot of the same type. The relocated
// occupant's recorded result moves with it, so no slot ends up claimed
// twice. The caller claims the freed slot.
func (st *matchState) resolveConflict(sortedSrcIdx, origSrcPos int, src material.Sampler, targetIdx int) *MatchResult {
	if !st.opts.AllowOrderAdjustment {
		return nil
	}
	if st.adjustments >= st.opts.MaxOrderAdjustments {
		return nil
	}
	existingSrc, ok := st.matchOfTarget[targetIdx]
	if !ok {
		return nil
	}

	baseType := src.BaseType
	for altIdx, alt := range st.sortedTarget {
		if altIdx == targetIdx {
			continue
		}
		if alt.sampler.BaseType != baseType || st.occupied[altIdx] {
			continue
		}

		st.occupied[altIdx] = true
		st.matchOfTarget[altIdx] = existingSrc
		st.occupied[targetIdx] = false
		delete(st.matchOfTarget, targetIdx)
		st.results[existingSrc].TargetPos = st.sortedTarget[altIdx].origPos

		st.adjustments++
		st.log.Debug("conflict resolved",
			zap.Int("relocated_source", existingSrc),
			zap.Int("alternate_slot", altIdx),
			zap.Int("contested_slot", targetIdx),
		)

		return &MatchResult{
			SourcePos:     origSrcPos,
			TargetPos:     targetIdx,
			Status:        StatusPerfectMatch,
			Reason:        fmt.Sprintf("perfect match (conflict resolved): type %s, index %d", baseType, src.Index),
			OrderAdjusted: true,
		}
	}

	return nil
}

// swapNeighbor looks for an occupied slot of the needed type whose
// immediate successor is a free slot of the same type, moves the
// occupant over, and takes the freed slot.
func (st *matchState) swapNeighbor(sortedSrcIdx, origSrcPos int, src material.Sampler) *MatchResult {
	baseType := src.BaseType

	for j, t := range st.sortedTarget {
		if t.sampler.BaseType != baseType || !st.occupied[j] {
			continue
		}
		if j+1 >= len(st.sortedTarget) {
			continue
		}
		next := st.sortedTarget[j+1]
		if next.sampler.BaseType != baseType || st.occupied[j+1] {
			continue
		}

		prevSrc := st.matchOfTarget[j]
		st.matchOfTarget[j+1] = prevSrc
		st.matchOfTarget[j] = sortedSrcIdx
		st.occupied[j+1] = true
		st.results[prevSrc].TargetPos = next.origPos

		st.adjustments++
		st.log.Debug("swap neighbor",
			zap.Int("relocated_source", prevSrc),
			zap.Int("from_slot", j),
			zap.Int("to_slot", j+1),
		)

		return &MatchResult{
			SourcePos:        origSrcPos,
			TargetPos:        j,
			Status:           StatusAdjacentMatch,
			Reason:           fmt.Sprintf("swap neighbor: type %s, occupant moved to %d", baseType, j+1),
			OrderAdjusted:    true,
			AdjustmentDetail: fmt.Sprintf("swap: src%d->t%d, src%d->t%d", prevSrc, j+1, sortedSrcIdx, j),
		}
	}

	return nil
}

// shiftForward finds the first occupied slot of the needed type and
// defers its occupant to a free same-type slot within shiftWindow
// positions, taking the freed slot.
func (st *matchState) shiftForward(sortedSrcIdx, origSrcPos int, src material.Sampler) *MatchResult {
	baseType := src.BaseType

	for start, t := range st.sortedTarget {
		if t.sampler.BaseType != baseType || !st.occupied[start] {
			continue
		}

		end := start + shiftWindow + 1
		if end > len(st.sortedTarget) {
			end = len(st.sortedTarget)
		}
		for k := start + 1; k < end; k++ {
			next := st.sortedTarget[k]
			if next.sampler.BaseType != baseType || st.occupied[k] {
				continue
			}

			prevSrc := st.matchOfTarget[start]
			st.matchOfTarget[k] = prevSrc
			st.occupied[k] = true
			st.matchOfTarget[start] = sortedSrcIdx
			st.results[prevSrc].TargetPos = next.origPos

			st.adjustments++
			st.log.Debug("shift forward",
				zap.Int("relocated_source", prevSrc),
				zap.Int("from_slot", start),
				zap.Int("to_slot", k),
			)

			return &MatchResult{
				SourcePos:        origSrcPos,
				TargetPos:        start,
				Status:           StatusAdjacentMatch,
				Reason:           fmt.Sprintf("shift forward: type %s, occupant deferred within window", baseType),
				OrderAdjusted:    true,
				AdjustmentDetail: fmt.Sprintf("shift: src%d->t%d, src%d->t%d", prevSrc, k, sortedSrcIdx, start),
			}
		}
	}

	return nil
}
