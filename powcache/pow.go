package powcache

import (
	"math/big"
	"sync"
)

var defaultCache = sync.OnceValue(func() *Cache { return New() })

// Default returns the process-wide cache behind the package-level functions.
func Default() *Cache {
	return defaultCache()
}

// Pow returns basement^exponent without touching any cache.
func Pow(basement *big.Int, exponent int) (*big.Int, error) {
	if err := validate(basement, exponent); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(basement, big.NewInt(int64(exponent)), nil), nil
}

// PowCached is Default().PowCached.
func PowCached(basement *big.Int, exponent int) (*big.Int, error) {
	return Default().PowCached(basement, exponent)
}

// ShrinkCacheData is Default().ShrinkCacheData.
func ShrinkCacheData(keep int) {
	Default().ShrinkCacheData(keep)
}

// ItemsInCache is Default().ItemsInCache.
func ItemsInCache() int {
	return Default().ItemsInCache()
}
