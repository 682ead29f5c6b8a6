package material

import (
	"strings"

	"material-manager/core/sampler"
)

// Vec2 is a two-component texture scale.
type Vec2 struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// Sampler is one texture-binding slot within a material.
type Sampler struct {
	// TypeName is the raw sampler identifier,
	// e.g. "C_DetailBlend_Rich__snp_Texture2D_7_AlbedoMap".
	TypeName string

	// Path is the texture reference. Empty means unset.
	Path string

	// Scale is the texture scale carried through conversion.
	Scale Vec2

	// Opaque fields preserved verbatim across import, conversion,
	// and export.
	Unk10 int64
	Unk11 bool
	Unk14 int64
	Unk18 int64
	Unk1C int64

	// Index is the slot index decoded from TypeName, or
	// sampler.NoIndex when the name carries none.
	Index int32

	// BaseType is the semantic texture role decoded from TypeName,
	// e.g. "AlbedoMap".
	BaseType string

	// IsLegacy reports whether TypeName is an old-generation fixed
	// name.
	IsLegacy bool

	// OriginalPosition is the sampler's position within its owning
	// material's list, fixed at construction and never reassigned.
	OriginalPosition int
}

// NewSampler builds a sampler for typeName with decoded type
// information and the default unit scale.
func NewSampler(typeName, path string) Sampler {
	index, baseType, legacy := sampler.Decode(typeName)
	return Sampler{
		TypeName: typeName,
		Path:     path,
		Scale:    Vec2{X: 1, Y: 1},
		Index:    index,
		BaseType: baseType,
		IsLegacy: legacy,
	}
}

// HasPath reports whether the sampler carries a texture reference.
// Whitespace-only paths count as unset.
func (s Sampler) HasPath() bool {
	return strings.TrimSpace(s.Path) != ""
}

// DisplayName renders the sampler's identifier for presentation.
func (s Sampler) DisplayName() string {
	return sampler.DisplayName(s.TypeName)
}

// Material is a named shader binding with an ordered sampler list.
// Sampler order is semantically meaningful: it is the author's intent
// order.
type Material struct {
	// Name is the material's display name.
	Name string

	// MTDPath is the shader definition path.
	MTDPath string

	// Samplers is the ordered slot list.
	Samplers []Sampler

	// GXIndex and Index are carried through conversion unmodified.
	GXIndex int32
	Index   int32
}

// NewMaterial assembles a material, pinning each sampler's original
// position. The sampler slice is copied; the input is not retained.
func NewMaterial(name, mtdPath string, samplers []Sampler, gxIndex, index int32) Material {
	owned := make([]Sampler, len(samplers))
	copy(owned, samplers)
	for i := range owned {
		owned[i].OriginalPosition = i
	}
	return Material{
		Name:     name,
		MTDPath:  mtdPath,
		Samplers: owned,
		GXIndex:  gxIndex,
		Index:    index,
	}
}
