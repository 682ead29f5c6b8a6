package material

import "encoding/json"

// DefaultMaxOrderAdjustments is the per-call budget for local order
// adjustments when no other value is configured.
const DefaultMaxOrderAdjustments = int32(3)

// ConversionOptions configures one conversion. The matching options
// gate individual engine phases; the path and parameter options are
// consumed by callers (codec, CLI), never by the engine itself.
type ConversionOptions struct {
	// SimplifyTexturePath reduces exported texture paths to their
	// final component.
	SimplifyTexturePath bool `json:"simplify_texture_path"`

	// SimplifyMaterialPath reduces the exported MTD path to its final
	// component.
	SimplifyMaterialPath bool `json:"simplify_material_path"`

	// MigrateParameters is carried for round-trip compatibility.
	MigrateParameters bool `json:"migrate_parameters"`

	// PreferPerfectMatch enables exact index+type matching (Step 1).
	PreferPerfectMatch bool `json:"prefer_perfect_match"`

	// PreferMarkedCoverage enables type matching onto target slots
	// that already carry a path (Step 2).
	PreferMarkedCoverage bool `json:"prefer_marked_coverage"`

	// AllowOrderAdjustment enables local conflict resolution
	// (Phase 2).
	AllowOrderAdjustment bool `json:"allow_order_adjustment"`

	// MaxOrderAdjustments is the budget shared across one whole
	// conversion call for all Phase 2 adjustments.
	MaxOrderAdjustments int32 `json:"max_order_adjustments"`

	// StrictOrderValidation enables the global order check and repair
	// pass (Phase 3). Advisory only: it never blocks a result.
	StrictOrderValidation bool `json:"strict_order_validation"`
}

// DefaultOptions returns the standard conversion configuration.
func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		SimplifyTexturePath:   false,
		SimplifyMaterialPath:  false,
		MigrateParameters:     true,
		PreferPerfectMatch:    true,
		PreferMarkedCoverage:  true,
		AllowOrderAdjustment:  true,
		MaxOrderAdjustments:   DefaultMaxOrderAdjustments,
		StrictOrderValidation: true,
	}
}

// ParseOptions decodes options from their persisted JSON form. Absent
// keys keep their defaults; unknown keys are ignored.
func ParseOptions(data []byte) (ConversionOptions, error) {
	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		return ConversionOptions{}, err
	}
	return opts, nil
}
