package reconcile

import (
	"testing"

	"material-manager/core/material"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReplaceLegacy_NameMatch tests that legacy sources claim the
// same-named legacy target regardless of target order.
func TestReplaceLegacy_NameMatch(t *testing.T) {
	source := mat("Src",
		material.NewSampler("g_DiffuseTexture", "tex\\d.tga"),
		material.NewSampler("g_SpecularTexture", "tex\\s.tga"),
	)
	target := mat("Tgt",
		material.NewSampler("g_SpecularTexture", ""),
		material.NewSampler("g_DiffuseTexture", ""),
	)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 2)
	assert.Equal(t, 1, res.Results[0].TargetPos)
	assert.Equal(t, StatusPerfectMatch, res.Results[0].Status)
	assert.Equal(t, "legacy name match: DiffuseTexture", res.Results[0].Reason)
	assert.Equal(t, 0, res.Results[1].TargetPos)
	assert.Equal(t, "legacy name match: SpecularTexture", res.Results[1].Reason)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, int32(0), res.OrderAdjustments)
	assert.False(t, res.GlobalRepairTriggered)
}

// TestReplaceLegacy_CrossGeneration tests the legacy-to-modern fallback
// through the declared mapping.
func TestReplaceLegacy_CrossGeneration(t *testing.T) {
	source := mat("Src", material.NewSampler("g_DiffuseTexture", "tex\\old.tga"))
	target := mat("Tgt", texSampler("AlbedoMap", 0, ""))

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 1)
	r := res.Results[0]
	assert.Equal(t, 0, r.TargetPos)
	assert.Equal(t, StatusAdjacentMatch, r.Status)
	assert.Equal(t, "cross-generation mapping: DiffuseTexture -> AlbedoMap", r.Reason)
	assert.Empty(t, res.Warnings)
}

// TestReplaceLegacy_CandidateOrder tests that the declared candidate
// order decides the slot when several modern types could take a legacy
// sampler, even when a later candidate appears earlier in the target.
func TestReplaceLegacy_CandidateOrder(t *testing.T) {
	source := mat("Src", material.NewSampler("g_BloodMaskTexture", "tex\\blood.tga"))

	// Digit-bearing type tokens do not decode from names, so the
	// samplers are assembled by hand the way an import adapter would.
	target := material.NewMaterial("Tgt", "N:\\Test\\Tgt.mtd", []material.Sampler{
		{
			TypeName: "M_Test__snp_Texture2D_3_Mask1Map",
			Scale:    material.Vec2{X: 1, Y: 1},
			Index:    3,
			BaseType: "Mask1Map",
		},
		{
			TypeName: "M_Test__snp_Texture2D_5_MaskMap",
			Scale:    material.Vec2{X: 1, Y: 1},
			Index:    5,
			BaseType: "MaskMap",
		},
	}, 0, 0)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 1)
	r := res.Results[0]
	// MaskMap precedes Mask1Map in the candidate list, so the second
	// target slot wins.
	assert.Equal(t, 1, r.TargetPos)
	assert.Equal(t, StatusAdjacentMatch, r.Status)
	assert.Equal(t, "cross-generation mapping: BloodMaskTexture -> MaskMap", r.Reason)
}

// TestReplaceLegacy_NoMapping tests that a legacy type without modern
// candidates stays unmatched and is reported.
func TestReplaceLegacy_NoMapping(t *testing.T) {
	source := mat("Src", material.NewSampler("g_BlendMaskTexture", "tex\\b.tga"))
	target := mat("Tgt", texSampler("AlbedoMap", 0, ""))

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 1)
	r := res.Results[0]
	assert.Equal(t, NoTarget, r.TargetPos)
	assert.Equal(t, StatusUnmatched, r.Status)
	assert.Equal(t, "no matching target for legacy sampler BlendMaskTexture", r.Reason)
	assert.Contains(t, res.Warnings, "source sampler BlendMaskTexture unmatched")
}

// TestReplaceLegacy_MixedSource tests that the legacy branch handles
// pathless and modern source samplers without producing target rows.
func TestReplaceLegacy_MixedSource(t *testing.T) {
	source := mat("Src",
		material.NewSampler("g_DiffuseTexture", "tex\\d.tga"),
		texSampler("AlbedoMap", 2, "tex\\a.tga"),
		material.NewSampler("g_BumpmapTexture", ""),
	)
	target := mat("Tgt",
		texSampler("AlbedoMap", 0, ""),
		texSampler("NormalMap", 1, ""),
	)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 3)

	assert.Equal(t, 0, res.Results[0].TargetPos)
	assert.Equal(t, StatusAdjacentMatch, res.Results[0].Status)

	assert.Equal(t, StatusUnmatched, res.Results[1].Status)
	assert.Equal(t, "not a legacy sampler, skipped legacy matching", res.Results[1].Reason)

	assert.Equal(t, StatusEmpty, res.Results[2].Status)
	assert.Equal(t, "source sampler has no path, skipped", res.Results[2].Reason)

	for i, r := range res.Results {
		assert.Equal(t, i, r.SourcePos)
	}
}

// TestReplaceLegacy_UncoveredTargetWarning tests that kept target paths
// surface as warnings after legacy matching.
func TestReplaceLegacy_UncoveredTargetWarning(t *testing.T) {
	source := mat("Src", material.NewSampler("g_DiffuseTexture", "tex\\d.tga"))
	target := mat("Tgt",
		texSampler("AlbedoMap", 0, ""),
		texSampler("NormalMap", 1, "tex\\keep.tga"),
	)

	res := NewEngine(material.DefaultOptions(), nil).Replace(source, target)

	require.Len(t, res.Results, 1)
	assert.Equal(t, 0, res.Results[0].TargetPos)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "target sampler #1 (NormalMap) not covered", res.Warnings[0])
}
