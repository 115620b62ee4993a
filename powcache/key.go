package powcache

import (
	"encoding/hex"
	"math/big"
	"strconv"
)

// Key identifies one cached power. Basement holds the sign and magnitude
// bytes of the basement, so equal values always produce equal keys.
type Key struct {
	Basement string
	Exponent int
}

// KeyOf returns the key of basement^exponent.
func KeyOf(basement *big.Int, exponent int) Key {
	return Key{Basement: basementID(basement), Exponent: exponent}
}

func basementID(basement *big.Int) string {
	mag := basement.Bytes()
	b := make([]byte, 0, len(mag)+1)
	if basement.Sign() < 0 {
		b = append(b, '-')
	} else {
		b = append(b, '+')
	}
	return string(append(b, mag...))
}

// String formats the key for logs: powcache:<sign><hex magnitude>^<exponent>.
func (k Key) String() string {
	if k.Basement == "" {
		return "powcache:?^" + strconv.Itoa(k.Exponent)
	}
	return "powcache:" + k.Basement[:1] + hex.EncodeToString([]byte(k.Basement[1:])) + "^" + strconv.Itoa(k.Exponent)
}
