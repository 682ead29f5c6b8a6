package reconcile

import (
	"testing"

	"material-manager/core/material"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReplace_GlobalOrderRepairSwaps tests that perfect matches landing
// against the source order are swapped back by the repair pass without
// touching the adjustment budget.
func TestReplace_GlobalOrderRepairSwaps(t *testing.T) {
	source := mat("Src",
		texSampler("AlbedoMap", 7, "tex\\a.tga"),
		texSampler("AlbedoMap", 2, "tex\\b.tga"),
	)
	target := mat("Tgt",
		texSampler("AlbedoMap", 2, ""),
		texSampler("AlbedoMap", 7, ""),
	)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 2)

	first := res.Results[0]
	assert.Equal(t, 0, first.TargetPos)
	assert.Equal(t, StatusPerfectMatch, first.Status)
	assert.True(t, first.OrderAdjusted)
	assert.Contains(t, first.AdjustmentDetail, "global order repair (swap)")

	second := res.Results[1]
	assert.Equal(t, 1, second.TargetPos)
	assert.True(t, second.OrderAdjusted)
	assert.Contains(t, second.AdjustmentDetail, "global order repair (swap)")

	assert.True(t, res.GlobalRepairTriggered)
	assert.Contains(t, res.Warnings, "global order repair triggered")
	assert.Equal(t, int32(0), res.OrderAdjustments)
}

// TestReplace_GlobalOrderRepairUnrepairable tests that an inversion
// between incompatible slot types is marked but left in place.
func TestReplace_GlobalOrderRepairUnrepairable(t *testing.T) {
	source := mat("Src",
		texSampler("AlbedoMap", 7, "tex\\a.tga"),
		texSampler("NormalMap", 2, "tex\\n.tga"),
	)
	target := mat("Tgt",
		texSampler("NormalMap", 9, ""),
		texSampler("AlbedoMap", 3, ""),
	)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 2)

	first := res.Results[0]
	assert.Equal(t, 1, first.TargetPos)
	assert.True(t, first.OrderAdjusted)
	assert.Contains(t, first.AdjustmentDetail, "order conflict (unrepairable)")

	second := res.Results[1]
	assert.Equal(t, 0, second.TargetPos)
	assert.True(t, second.OrderAdjusted)
	assert.Contains(t, second.AdjustmentDetail, "order conflict (unrepairable)")

	assert.False(t, res.GlobalRepairTriggered)
	assert.NotContains(t, res.Warnings, "global order repair triggered")
}

// TestReplace_StrictOrderValidationDisabled tests that the repair pass
// is skipped entirely when strict order validation is off.
func TestReplace_StrictOrderValidationDisabled(t *testing.T) {
	opts := material.DefaultOptions()
	opts.StrictOrderValidation = false

	source := mat("Src",
		texSampler("AlbedoMap", 7, "tex\\a.tga"),
		texSampler("AlbedoMap", 2, "tex\\b.tga"),
	)
	target := mat("Tgt",
		texSampler("AlbedoMap", 2, ""),
		texSampler("AlbedoMap", 7, ""),
	)

	res := NewEngine(opts, nil).Replace(source, target)

	require.Len(t, res.Results, 2)
	assert.Equal(t, 1, res.Results[0].TargetPos)
	assert.Equal(t, 0, res.Results[1].TargetPos)
	for _, r := range res.Results {
		assert.False(t, r.OrderAdjusted)
		assert.Empty(t, r.AdjustmentDetail)
	}
	assert.False(t, res.GlobalRepairTriggered)
	assert.Empty(t, res.Warnings)
}

// TestReplace_SingleMatchSkipsRepair tests that the repair pass needs
// at least two matches to act.
func TestReplace_SingleMatchSkipsRepair(t *testing.T) {
	source := mat("Src", texSampler("AlbedoMap", 7, "tex\\a.tga"))
	target := mat("Tgt", texSampler("AlbedoMap", 7, ""))

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	assert.False(t, res.GlobalRepairTriggered)
	require.Len(t, res.Results, 1)
	assert.False(t, res.Results[0].OrderAdjusted)
}
