package nthroot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/jonwraymond/bigroot/observe"
	"github.com/jonwraymond/bigroot/powcache"
	"github.com/jonwraymond/bigroot/randgen"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func mustBig(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return v
}

// checkFloorRoot verifies the Result invariant against radicand and degree.
func checkFloorRoot(t testing.TB, radicand *big.Int, degree int, res Result) {
	t.Helper()
	lower := pow(res.Value, degree)
	if res.Exact {
		if lower.Cmp(radicand) != 0 {
			t.Fatalf("degree=%d radicand=%s: exact result %s, but %s^%d = %s", degree, radicand, res.Value, res.Value, degree, lower)
		}
		return
	}
	upper := pow(new(big.Int).Add(res.Value, bigOne), degree)
	if lower.Cmp(radicand) >= 0 || upper.Cmp(radicand) <= 0 {
		t.Fatalf("degree=%d radicand=%s: %s is not the inexact floor root", degree, radicand, res.Value)
	}
}

func TestNthRoot_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		radicand  string
		degree    int
		want      string
		wantExact bool
	}{
		{name: "perfect square", radicand: "1000000", degree: 2, want: "1000", wantExact: true},
		{name: "square plus one", radicand: "1000001", degree: 2, want: "1000", wantExact: false},
		{name: "zero", radicand: "0", degree: 5, want: "0", wantExact: true},
		{name: "one", radicand: "1", degree: 7, want: "1", wantExact: true},
		{name: "two degree 64", radicand: "2", degree: 64, want: "1", wantExact: false},
		{name: "degree one", radicand: "123456789", degree: 1, want: "123456789", wantExact: true},
		{name: "cube below", radicand: "26", degree: 3, want: "2", wantExact: false},
		{name: "cube", radicand: "27", degree: 3, want: "3", wantExact: true},
		{name: "large fifth power", radicand: "1267650600228229401496703205376", degree: 5, want: "1048576", wantExact: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NthRoot(mustBig(t, tc.radicand), tc.degree)
			if err != nil {
				t.Fatalf("NthRoot failed: %v", err)
			}
			if res.Value.String() != tc.want || res.Exact != tc.wantExact {
				t.Errorf("NthRoot(%s, %d) = (%s, %v), want (%s, %v)",
					tc.radicand, tc.degree, res.Value, res.Exact, tc.want, tc.wantExact)
			}
		})
	}
}

func TestNthRoot_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		radicand *big.Int
		degree   int
		want     error
	}{
		{name: "nil radicand", radicand: nil, degree: 2, want: ErrNilRadicand},
		{name: "negative radicand", radicand: big.NewInt(-1), degree: 2, want: ErrNegativeRadicand},
		{name: "negative degree", radicand: big.NewInt(4), degree: -2, want: ErrNegativeDegree},
		{name: "zero degree", radicand: big.NewInt(4), degree: 0, want: ErrAmbiguousExponent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NthRoot(tc.radicand, tc.degree)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected error to wrap ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestNthRoot_DoesNotMutateRadicand(t *testing.T) {
	radicand := mustBig(t, "987654321987654321987654321")
	before := new(big.Int).Set(radicand)
	for _, degree := range []int{1, 2, 3, 4, 7, 16} {
		if _, err := NthRoot(radicand, degree); err != nil {
			t.Fatalf("NthRoot failed: %v", err)
		}
	}
	if radicand.Cmp(before) != 0 {
		t.Errorf("radicand changed from %s to %s", before, radicand)
	}
}

// TestNthRoot_RoundTrip raises random basements and takes the root back.
func TestNthRoot_RoundTrip(t *testing.T) {
	g := randgen.New(7)

	for i := 0; i < 400; i++ {
		degree := g.IntRange(1, 120)
		basement, err := g.NextWithLength(1, 30, 10)
		if err != nil {
			t.Fatal(err)
		}

		res, err := NthRoot(pow(basement, degree), degree)
		if err != nil {
			t.Fatalf("NthRoot failed: %v", err)
		}
		if res.Value.Cmp(basement) != 0 || !res.Exact {
			t.Fatalf("degree=%d basement=%s: got (%s, %v)", degree, basement, res.Value, res.Exact)
		}
	}
}

// TestNthRoot_BetweenPowers picks radicands between consecutive powers,
// including both ends.
func TestNthRoot_BetweenPowers(t *testing.T) {
	g := randgen.New(11)

	for i := 0; i < 400; i++ {
		degree := g.IntRange(2, 80)
		less := big.NewInt(int64(g.IntRange(1, 5000)))
		greater := new(big.Int).Add(less, bigOne)
		lowPow, highPow := pow(less, degree), pow(greater, degree)

		radicand, err := g.NextInRange(lowPow, highPow)
		if err != nil {
			t.Fatal(err)
		}

		res, err := NthRoot(radicand, degree)
		if err != nil {
			t.Fatalf("NthRoot failed: %v", err)
		}

		want := less
		if radicand.Cmp(highPow) == 0 {
			want = greater
		}
		wantExact := radicand.Cmp(lowPow) == 0 || radicand.Cmp(highPow) == 0
		if res.Value.Cmp(want) != 0 || res.Exact != wantExact {
			t.Fatalf("degree=%d radicand=%s: got (%s, %v), want (%s, %v)",
				degree, radicand, res.Value, res.Exact, want, wantExact)
		}
	}
}

// TestExtract_AllAlgorithmsAgree runs every applicable algorithm on the same
// inputs, independently of the cost model.
func TestExtract_AllAlgorithmsAgree(t *testing.T) {
	g := randgen.New(13)
	root := New()
	ctx := context.Background()

	for i := 0; i < 300; i++ {
		degree := g.IntRange(1, 64)
		if i%3 == 0 {
			degree = 1 << g.IntRange(0, 6)
		}
		radicand, err := g.NextWithLength(1, 200, 10)
		if err != nil {
			t.Fatal(err)
		}

		var first *Result
		for _, alg := range Algorithms {
			if alg == AlgorithmDoubling && !isPowerOfTwo(degree) {
				continue
			}
			res, err := root.Extract(ctx, alg, radicand, degree)
			if err != nil {
				t.Fatalf("%s failed: %v", alg, err)
			}
			checkFloorRoot(t, radicand, degree, res)
			if first == nil {
				first = &res
			} else if first.Value.Cmp(res.Value) != 0 || first.Exact != res.Exact {
				t.Fatalf("%s disagrees: %v vs %v", alg, res, *first)
			}
		}
	}
}

func TestExtract_DoublingRejectsOtherDegrees(t *testing.T) {
	_, err := New().Extract(context.Background(), AlgorithmDoubling, big.NewInt(100), 3)
	if !errors.Is(err, ErrNotApplicable) {
		t.Errorf("expected ErrNotApplicable, got %v", err)
	}
}

func TestExtract_UnknownAlgorithm(t *testing.T) {
	_, err := New().Extract(context.Background(), Algorithm(42), big.NewInt(100), 2)
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

// TestDigits_ExactnessFromFinalGroupOnly checks radicands whose leading digit
// groups are perfect powers while the whole value is not, and vice versa.
func TestDigits_ExactnessFromFinalGroupOnly(t *testing.T) {
	tests := []struct {
		radicand  string
		degree    int
		want      string
		wantExact bool
	}{
		// leading group 16 = 4^2, full value is not a square
		{radicand: "1600000001", degree: 2, want: "40000", wantExact: false},
		// leading group 10 is no square, full value is 3163^2
		{radicand: "10004569", degree: 2, want: "3163", wantExact: true},
		// leading group 8 = 2^3, full value 8000001 is not a cube
		{radicand: "8000001", degree: 3, want: "200", wantExact: false},
		{radicand: "8120601", degree: 3, want: "201", wantExact: true},
	}

	for _, tc := range tests {
		radicand := mustBig(t, tc.radicand)
		res, err := byDigits(radicand, tc.degree, directPow{})
		if err != nil {
			t.Fatalf("byDigits failed: %v", err)
		}
		if res.Value.String() != tc.want || res.Exact != tc.wantExact {
			t.Errorf("byDigits(%s, %d) = (%s, %v), want (%s, %v)",
				tc.radicand, tc.degree, res.Value, res.Exact, tc.want, tc.wantExact)
		}
	}
}

func TestNewton_SeedBelowRootIsRaised(t *testing.T) {
	// 10^12 - 1 has a decimal log just under 12, the seed must still bound the root
	radicand := mustBig(t, "999999999999")
	res, err := byNewton(radicand, 2, directPow{})
	if err != nil {
		t.Fatalf("byNewton failed: %v", err)
	}
	if res.Value.String() != "999999" || res.Exact {
		t.Errorf("got (%s, %v), want (999999, false)", res.Value, res.Exact)
	}
}

type failingPow struct{ err error }

func (f failingPow) PowCached(*big.Int, int) (*big.Int, error) { return nil, f.err }

func TestNthRoot_ExponentiatorErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	root := New(WithExponentiator(failingPow{err: boom}))

	// degree 3 is not a power of two, so digits or newton is chosen and both
	// consult the exponentiator
	_, err := root.NthRoot(mustBig(t, "123456789012345678901234567890"), 3)
	if !errors.Is(err, boom) {
		t.Errorf("expected exponentiator error, got %v", err)
	}
}

func TestNthRoot_WithPowerCache(t *testing.T) {
	cache := powcache.New()
	root := New(WithExponentiator(cache))
	ctx := context.Background()
	g := randgen.New(19)

	for i := 0; i < 100; i++ {
		degree := g.IntRange(2, 40)
		radicand, err := g.NextWithLength(20, 120, 10)
		if err != nil {
			t.Fatal(err)
		}
		for _, alg := range []Algorithm{AlgorithmDigits, AlgorithmNewton} {
			res, err := root.Extract(ctx, alg, radicand, degree)
			if err != nil {
				t.Fatalf("%s failed: %v", alg, err)
			}
			checkFloorRoot(t, radicand, degree, res)
		}
	}
	if cache.ItemsInCache() == 0 {
		t.Error("expected the extractors to populate the power cache")
	}
}

func TestNthRoot_Instrumented(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var buf bytes.Buffer
	mw := observe.NewMiddleware(
		observe.NewTracer(tp.Tracer("test")),
		nil,
		observe.NewLoggerWithWriter("debug", &buf),
	)

	root := New(WithMiddleware(mw))
	res, err := root.NthRootContext(context.Background(), big.NewInt(1000000), 2)
	if err != nil {
		t.Fatalf("NthRootContext failed: %v", err)
	}
	if res.Value.Int64() != 1000 || !res.Exact {
		t.Errorf("got %v, want 1000", res)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if !strings.HasPrefix(spans[0].Name(), "bigroot.nthroot.") {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v\n%s", err, buf.String())
	}
	if entry["op.name"] != "nthroot" {
		t.Errorf("expected op.name=nthroot, got %v", entry["op.name"])
	}
}

func TestNthRoot_TrivialSkipsInstrumentation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	root := New(WithMiddleware(observe.NewMiddleware(observe.NewTracer(tp.Tracer("test")), nil, nil)))

	if _, err := root.NthRoot(big.NewInt(1), 3); err != nil {
		t.Fatal(err)
	}
	if n := len(recorder.Ended()); n != 0 {
		t.Errorf("expected no spans for a trivial radicand, got %d", n)
	}
}

func TestResult_String(t *testing.T) {
	if s := (Result{Value: big.NewInt(10), Exact: true}).String(); s != "10" {
		t.Errorf("got %q", s)
	}
	if s := (Result{Value: big.NewInt(10)}).String(); s != "~10" {
		t.Errorf("got %q", s)
	}
}
