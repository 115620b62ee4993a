// Package powcache raises big integers to integer powers and memoizes the
// intermediate powers of a divide-and-conquer split.
//
// Root extraction asks for the same powers over and over: 10^degree for
// every call with one degree, or b^k for many nearby k. PowCached computes
// b^e as b^(e/2) * b^(e-e/2), caching every intermediate product, so a later
// request for a nearby exponent reuses most of the work.
//
// # Eviction
//
// Every insert and hit stamps the entry from a monotonic counter.
// ShrinkCacheData(n) keeps the n most recently used entries and renumbers
// them 1..n; ShrinkCacheData(0) empties the cache. The cache shrinks itself
// to half its size when the counter reaches Policy.CounterLimit.
//
// # Memory pressure
//
// When a Policy.Guard is set it is consulted before each new product is
// allocated. A refusal clears the cache and the call is retried once; a
// second refusal is returned as ErrAllocationFailed.
//
// # Concurrency
//
// A Cache is safe for concurrent use. One mutex covers an entire PowCached,
// ShrinkCacheData or ItemsInCache call, so cache work is serialized.
package powcache
