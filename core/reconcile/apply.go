package reconcile

import "material-manager/core/material"

// Apply merges a replace outcome into a new material. The target's
// sampler list is copied as the skeleton; every matched slot receives
// the source sampler's path and scale while all other sampler fields
// keep the target's values. Slots no result claims stay untouched.
//
// The output takes the source's name and indices but the target's
// shader definition.
func Apply(res *ReplaceResult) material.Material {
	samplers := make([]material.Sampler, len(res.Target.Samplers))
	copy(samplers, res.Target.Samplers)
	for i := range samplers {
		samplers[i].OriginalPosition = i
	}

	for _, r := range res.Results {
		if r.TargetPos == NoTarget {
			continue
		}
		src := res.Source.Samplers[r.SourcePos]
		samplers[r.TargetPos].Path = src.Path
		samplers[r.TargetPos].Scale = src.Scale
	}

	return material.Material{
		Name:     res.Source.Name,
		MTDPath:  res.Target.MTDPath,
		Samplers: samplers,
		GXIndex:  res.Source.GXIndex,
		Index:    res.Source.Index,
	}
}
