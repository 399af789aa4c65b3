package contract

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/evm-abi/pkg/abi"
)

// DefaultCacheSize is the default number of parsed signatures kept by
// SignatureCache.
const DefaultCacheSize = 128

// SignatureCache keeps recently parsed human-readable signatures. It's safe
// for concurrent use.
type SignatureCache struct {
	coder *abi.Coder
	cache *lru.Cache
}

// NewSignatureCache creates a cache of the given size (DefaultCacheSize if
// it's not positive) parsing signatures with the given coder.
func NewSignatureCache(c *abi.Coder, size int) *SignatureCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New(size) // Never errors for positive size.
	return &SignatureCache{coder: c, cache: cache}
}

// Get returns the parsed signature, parsing it if it's not cached yet. The
// fragment is shared between callers and must not be modified.
func (c *SignatureCache) Get(sig string) (*abi.Fragment, error) {
	if f, ok := c.cache.Get(sig); ok {
		return f.(*abi.Fragment), nil
	}
	f, err := c.coder.ParseSignature(sig)
	if err != nil {
		return nil, err
	}
	c.cache.Add(sig, &f)
	return &f, nil
}

// Contains checks whether the signature is cached without updating its
// recency.
func (c *SignatureCache) Contains(sig string) bool {
	return c.cache.Contains(sig)
}

// Len returns the number of cached signatures.
func (c *SignatureCache) Len() int {
	return c.cache.Len()
}

// Purge removes all cached signatures.
func (c *SignatureCache) Purge() {
	c.cache.Purge()
}
