// Package randgen generates uniformly distributed random big integers for
// tests, fixtures and benchmarks. It is not suitable for cryptographic use.
package randgen

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
)

// Sentinel errors for generator arguments.
var (
	ErrInvalidRange  = errors.New("randgen: max value can not be less than min value")
	ErrInvalidLength = errors.New("randgen: invalid length bounds")
	ErrInvalidRadix  = errors.New("randgen: radix must be between 2 and 62")
)

// Generator is a seeded source of random big integers. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a deterministic generator for the given seed.
func New(seed uint64) *Generator {
	// #nosec G404 -- test data, not secrets.
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a generator seeded from the runtime's random source.
func NewRandom() *Generator {
	// #nosec G404 -- test data, not secrets.
	return New(rand.Uint64())
}

// IntRange returns a uniform int in [lo, hi]. It panics if hi < lo.
func (g *Generator) IntRange(lo, hi int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + g.rnd.IntN(hi-lo+1)
}

// NextInRange returns a uniform value in [lo, hi], both inclusive.
func (g *Generator) NextInRange(lo, hi *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) < 0 {
		return nil, fmt.Errorf("%w: min=%s max=%s", ErrInvalidRange, lo, hi)
	}

	span := new(big.Int).Sub(hi, lo)
	if span.Sign() == 0 {
		return new(big.Int).Set(hi), nil
	}
	span.Add(span, big.NewInt(1))

	g.mu.Lock()
	defer g.mu.Unlock()

	// rejection sampling keeps the distribution uniform
	bits := span.BitLen()
	for {
		v := g.randBits(bits)
		if v.Cmp(span) < 0 {
			return v.Add(v, lo), nil
		}
	}
}

// NextWithLength returns a value whose representation in radix has between
// minLength and maxLength digits, with no leading zeros.
func (g *Generator) NextWithLength(minLength, maxLength, radix int) (*big.Int, error) {
	if radix < 2 || radix > 62 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
	}
	if minLength < 1 || maxLength < minLength {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidLength, minLength, maxLength)
	}

	length := g.IntRange(minLength, maxLength)
	bigRadix := big.NewInt(int64(radix))

	hi := new(big.Int).Exp(bigRadix, big.NewInt(int64(length)), nil)
	hi.Sub(hi, big.NewInt(1))

	lo := new(big.Int)
	if length > 1 {
		lo.Exp(bigRadix, big.NewInt(int64(length-1)), nil)
	}

	return g.NextInRange(lo, hi)
}

// randBits returns a uniform value in [0, 2^n). Callers hold g.mu.
func (g *Generator) randBits(n int) *big.Int {
	buf := make([]byte, (n+7)/8)
	for i := 0; i < len(buf); i += 8 {
		w := g.rnd.Uint64()
		for j := 0; j < 8 && i+j < len(buf); j++ {
			buf[i+j] = byte(w >> (8 * j))
		}
	}
	if extra := len(buf)*8 - n; extra > 0 {
		buf[0] &= 0xff >> extra
	}
	return new(big.Int).SetBytes(buf)
}
