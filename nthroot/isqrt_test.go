package nthroot

import (
	"math/big"
	"testing"

	"github.com/jonwraymond/bigroot/randgen"
)

func TestISqrt_MatchesBigSqrt(t *testing.T) {
	g := randgen.New(3)

	// bit lengths straddling every tier boundary
	lengths := []int{1, 2, 51, 52, 53, 54, 105, 106, 107, 108, 200, 1000, 4096}
	for _, bits := range lengths {
		lo := new(big.Int).Lsh(bigOne, uint(bits-1))
		hi := new(big.Int).Lsh(bigOne, uint(bits))
		hi.Sub(hi, bigOne)
		for i := 0; i < 50; i++ {
			x, err := g.NextInRange(lo, hi)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := ISqrt(x), new(big.Int).Sqrt(x); got.Cmp(want) != 0 {
				t.Fatalf("ISqrt(%s) = %s, want %s", x, got, want)
			}
		}
	}
}

func TestISqrt_AroundPerfectSquares(t *testing.T) {
	g := randgen.New(5)
	for i := 0; i < 300; i++ {
		root, err := g.NextWithLength(1, 120, 10)
		if err != nil {
			t.Fatal(err)
		}
		sq := new(big.Int).Mul(root, root)

		if got := ISqrt(sq); got.Cmp(root) != 0 {
			t.Fatalf("ISqrt(%s^2) = %s", root, got)
		}
		if sq.Sign() == 0 {
			continue
		}
		below := new(big.Int).Sub(sq, bigOne)
		want := new(big.Int).Sub(root, bigOne)
		if got := ISqrt(below); got.Cmp(want) != 0 {
			t.Fatalf("ISqrt(%s^2 - 1) = %s, want %s", root, got, want)
		}
	}
}

func TestISqrt_Small(t *testing.T) {
	for x := int64(0); x < 2000; x++ {
		got := ISqrt(big.NewInt(x)).Int64()
		if got*got > x || (got+1)*(got+1) <= x {
			t.Fatalf("ISqrt(%d) = %d", x, got)
		}
	}
}

func TestISqrt_DoesNotMutate(t *testing.T) {
	x := new(big.Int).Lsh(bigOne, 999)
	x.Add(x, big.NewInt(12345))
	before := new(big.Int).Set(x)
	ISqrt(x)
	if x.Cmp(before) != 0 {
		t.Error("ISqrt modified its operand")
	}
}

func TestISqrt_PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	ISqrt(big.NewInt(-4))
}

// TestNestedSqrt checks the identity the doubling extractor relies on:
// repeated floor square roots equal the floor 2^k-th root.
func TestNestedSqrt(t *testing.T) {
	g := randgen.New(17)
	for i := 0; i < 200; i++ {
		x, err := g.NextWithLength(1, 300, 10)
		if err != nil {
			t.Fatal(err)
		}
		nested := new(big.Int).Set(x)
		for k := 1; k <= 6; k++ {
			nested = ISqrt(nested)
			degree := 1 << k

			r := nested
			if pow(r, degree).Cmp(x) > 0 {
				t.Fatalf("k=%d x=%s: %s overshoots", k, x, r)
			}
			next := new(big.Int).Add(r, bigOne)
			if pow(next, degree).Cmp(x) <= 0 {
				t.Fatalf("k=%d x=%s: %s undershoots", k, x, r)
			}
		}
	}
}

func TestNestedSqrt_AroundPerfectPowers(t *testing.T) {
	roots := []int64{2, 3, 10, 255, 65535, 4294967295, 99999999999}
	for _, root := range roots {
		r := big.NewInt(root)
		for k := 1; k <= 5; k++ {
			degree := 1 << k
			p := pow(r, degree)
			below := new(big.Int).Sub(p, bigOne)
			above := new(big.Int).Add(p, bigOne)

			for _, tc := range []struct {
				x    *big.Int
				want *big.Int
			}{
				{below, new(big.Int).Sub(r, bigOne)},
				{p, r},
				{above, r},
			} {
				got := new(big.Int).Set(tc.x)
				for i := 0; i < k; i++ {
					got = ISqrt(got)
				}
				if got.Cmp(tc.want) != 0 {
					t.Errorf("%d nested roots of %s = %s, want %s", k, tc.x, got, tc.want)
				}
			}
		}
	}
}
