// Package sampler decodes raw sampler type identifiers into their
// slot index, base type, and generation.
//
// Modern identifiers embed both pieces of information in the name
// (e.g. "C_DetailBlend_Rich__snp_Texture2D_7_AlbedoMap" carries slot
// index 7 and base type "AlbedoMap"). Legacy identifiers are fixed
// "g_"-prefixed names without a slot index.
//
// # Decoding
//
// Decode tries the legacy prefix list first, then four patterns in a
// fixed priority order. The order is load-bearing: earlier, more
// specific patterns must win over later, looser ones, so the patterns
// are never merged. Unparseable names are a normal outcome and decode
// to the Unknown base type, not an error.
//
// # Cross-generation data
//
// The package also carries the static mapping tables used when legacy
// materials are converted onto modern shader layouts: the ordered
// legacy-to-modern candidate lists and the display annotations for
// legacy sampler names.
//
// # Usage
//
//	index, baseType, legacy := sampler.Decode(typeName)
//
//	// Bulk loads can memoize decoding:
//	dec, _ := sampler.NewCachedDecoder(512)
//	index, baseType, legacy = dec.Decode(typeName)
package sampler
