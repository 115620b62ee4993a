package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonwraymond/bigroot/powcache"
	"github.com/jonwraymond/bigroot/randgen"
)

// CasesPerPlan is the number of cases generated per plan entry.
const CasesPerPlan = 10

// Plan is one entry of a fixture suite.
type Plan struct {
	Degree         int
	BasementLength int
}

// SpeedPlan returns the speed suite: powers of two from 2 to 16384 with
// powers of about 80000 digits, then primes from 127 to 173 with powers of
// about 30000 digits.
func SpeedPlan() []Plan {
	return []Plan{
		{2, 40960}, {4, 20480}, {8, 10240}, {16, 5120},
		{32, 2560}, {64, 1280}, {128, 640}, {256, 320},
		{512, 160}, {1024, 80}, {2048, 40}, {4096, 20},
		{8192, 10}, {16384, 5},
		{127, 229}, {131, 227}, {137, 223}, {139, 211}, {149, 199},
		{151, 197}, {157, 193}, {163, 191}, {167, 181}, {173, 179},
	}
}

// Generate creates n exact cases for plan: random basements of exactly
// plan.BasementLength decimal digits raised to plan.Degree.
func Generate(g *randgen.Generator, plan Plan, n int) ([]Case, error) {
	cases := make([]Case, 0, n)
	for i := 0; i < n; i++ {
		basement, err := g.NextWithLength(plan.BasementLength, plan.BasementLength, 10)
		if err != nil {
			return nil, fmt.Errorf("fixture: generate basement: %w", err)
		}
		power, err := powcache.Pow(basement, plan.Degree)
		if err != nil {
			return nil, fmt.Errorf("fixture: generate power: %w", err)
		}
		cases = append(cases, Case{
			Degree:   plan.Degree,
			Basement: basement,
			Power:    power,
			IsExact:  true,
		})
	}
	return cases, nil
}

// FileName returns the name of case k of plan entry index: "<index><k>.json"
// with a two-digit index, so lexical order follows the plan.
func FileName(index, k int) string {
	return fmt.Sprintf("%02d%d.json", index, k)
}

// WritePlan saves cases as plan entry index under dir, creating dir.
func WritePlan(dir string, index int, cases []Case) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	paths := make([]string, 0, len(cases))
	for k, c := range cases {
		p := filepath.Join(dir, FileName(index, k))
		if err := Save(p, c); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
