package sampler

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the cache capacity used when callers have no
// better estimate of their library's distinct type-name count.
const DefaultCacheSize = 512

// typeInfo is the cached decode result for one identifier.
type typeInfo struct {
	index    int32
	baseType string
	legacy   bool
}

// CachedDecoder memoizes Decode behind an LRU cache. Library files
// repeat the same type names heavily, so bulk imports decode each
// distinct name once. Results are identical to Decode.
//
// A CachedDecoder is safe for concurrent use.
type CachedDecoder struct {
	cache *lru.Cache[string, typeInfo]
}

// NewCachedDecoder creates a decoder with the given cache capacity.
func NewCachedDecoder(size int) (*CachedDecoder, error) {
	cache, err := lru.New[string, typeInfo](size)
	if err != nil {
		return nil, err
	}
	return &CachedDecoder{cache: cache}, nil
}

// Decode behaves exactly like the package-level Decode.
func (d *CachedDecoder) Decode(typeName string) (index int32, baseType string, legacy bool) {
	if info, ok := d.cache.Get(typeName); ok {
		return info.index, info.baseType, info.legacy
	}

	index, baseType, legacy = Decode(typeName)
	d.cache.Add(typeName, typeInfo{index: index, baseType: baseType, legacy: legacy})
	return index, baseType, legacy
}

// Len returns the number of cached identifiers.
func (d *CachedDecoder) Len() int {
	return d.cache.Len()
}
