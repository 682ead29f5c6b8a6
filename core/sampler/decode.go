package sampler

import (
	"regexp"
	"strconv"
	"strings"
)

// Unknown is the base type assigned to non-empty identifiers that no
// pattern recognizes.
const Unknown = "Unknown"

// NoIndex is the slot index for identifiers that carry none (legacy
// and unparseable names).
const NoIndex = int32(-1)

// legacyPrefixes lists the fixed legacy sampler names, checked in
// declared order before any pattern matching.
var legacyPrefixes = []string{
	"g_DiffuseTexture",
	"g_BumpmapTexture",
	"g_SpecularTexture",
	"g_BloodMaskTexture",
	"g_ShininessTexture",
	"g_LightmapTexture",
	"g_DetailBumpmapTexture",
	"g_DisplacementTexture",
	"g_BlendMaskTexture",
}

// legacyAnnotations maps a legacy base type to its display annotation.
// Display only, never consulted during matching.
var legacyAnnotations = map[string]string{
	"DiffuseTexture":       "漫反射",
	"BumpmapTexture":       "凹凸",
	"SpecularTexture":      "高光",
	"BloodMaskTexture":     "血迹",
	"ShininessTexture":     "反光",
	"LightmapTexture":      "光照",
	"DetailBumpmapTexture": "细节",
	"DisplacementTexture":  "置换",
	"BlendMaskTexture":     "混合",
}

// legacyToModern maps a legacy base type to its modern slot
// candidates. Candidate order is a declared preference: the first
// candidate with a free target slot wins. BlendMaskTexture has no
// modern equivalent and is absent.
var legacyToModern = map[string][]string{
	"DiffuseTexture":       {"AlbedoMap"},
	"BumpmapTexture":       {"NormalMap"},
	"SpecularTexture":      {"MetallicMap"},
	"BloodMaskTexture":     {"MaskMap", "Mask1Map", "Mask3Map"},
	"ShininessTexture":     {"MetallicMap"},
	"LightmapTexture":      {"EmissiveMap"},
	"DetailBumpmapTexture": {"NormalMap"},
	"DisplacementTexture":  {"DisplacementMap"},
}

// The four identifier patterns, tried strictly in this order. The
// first match wins and later patterns are not consulted.
var (
	// Texture2D_<index>_<Type>, anchored at the end.
	// e.g. C_DetailBlend_Rich__snp_Texture2D_7_AlbedoMap
	patternStandard = regexp.MustCompile(`Texture2D_(\d+)_([A-Za-z]+(?:Map)?)$`)

	// Texture2D_<index>_<TypeMap>_<digits>, a trailing numeric suffix.
	// e.g. C_c4450__AreaMatchBlend_snp_Texture2D_7_NormalMap_4
	patternSuffixed = regexp.MustCompile(`Texture2D_(\d+)_([A-Za-z]+Map)_\d+$`)

	// Texture2D_<index>_<infix>_<TypeMap>[_<digits>], tolerating an
	// infix segment before the final typed token.
	// e.g. M_AMSN_V_Mb2_Ov_N__snp_Texture2D_0_GSBlendMap_NormalMap_1
	patternInfixed = regexp.MustCompile(`Texture2D_(\d+)_.*?_([A-Za-z]+Map)(?:_\d+)?$`)

	// Texture2D_<index>_+<Type>, fallback for non-"Map" type names.
	// e.g. C_Crystal__snp_Texture2D_2__DistortionDepth
	patternBare = regexp.MustCompile(`Texture2D_(\d+)_+([A-Za-z]+)$`)
)

var patterns = []*regexp.Regexp{
	patternStandard,
	patternSuffixed,
	patternInfixed,
	patternBare,
}

// Decode parses a sampler type identifier into its slot index, base
// type, and legacy flag. It is pure and total: unrecognized names
// decode to (NoIndex, Unknown, false) and the empty string decodes to
// (NoIndex, "", false).
func Decode(typeName string) (index int32, baseType string, legacy bool) {
	if typeName == "" {
		return NoIndex, "", false
	}

	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(typeName, prefix) {
			return NoIndex, strings.TrimPrefix(prefix, "g_"), true
		}
	}

	for _, p := range patterns {
		if m := p.FindStringSubmatch(typeName); m != nil {
			n, _ := strconv.Atoi(m[1])
			return int32(n), m[2], false
		}
	}

	return NoIndex, Unknown, false
}

// IsLegacyName reports whether the identifier is one of the fixed
// legacy sampler names.
func IsLegacyName(typeName string) bool {
	if typeName == "" {
		return false
	}
	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(typeName, prefix) {
			return true
		}
	}
	return false
}

// ModernCandidates returns the ordered modern base types a legacy base
// type may convert onto. The result is a copy; an unmapped base type
// yields nil.
func ModernCandidates(legacyBaseType string) []string {
	candidates, ok := legacyToModern[legacyBaseType]
	if !ok {
		return nil
	}
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

// Annotation returns the display annotation for a legacy base type, or
// the empty string when there is none.
func Annotation(legacyBaseType string) string {
	return legacyAnnotations[legacyBaseType]
}

// LegacyDisplayName renders a legacy identifier with its annotation,
// e.g. "g_DiffuseTexture" becomes "g_DiffuseTexture(漫反射)".
// Non-legacy identifiers are returned unchanged.
func LegacyDisplayName(typeName string) string {
	_, baseType, legacy := Decode(typeName)
	if !legacy || baseType == "" {
		return typeName
	}
	if annotation := legacyAnnotations[baseType]; annotation != "" {
		return "g_" + baseType + "(" + annotation + ")"
	}
	return "g_" + baseType
}

// DisplayName renders an identifier for presentation: legacy names
// gain their annotation, modern names are shown in full.
func DisplayName(typeName string) string {
	_, _, legacy := Decode(typeName)
	if legacy {
		return LegacyDisplayName(typeName)
	}
	return typeName
}
