package fixture

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dchest/safefile"
)

// Record is the on-disk form of a fixture.
type Record struct {
	Exponent string `json:"exponent"`
	Basement string `json:"basement"`
	Power    string `json:"power"`
	IsExact  bool   `json:"is_exact"`
}

// Case is a parsed fixture: Basement is the expected degree-th root of Power.
type Case struct {
	Name     string
	Degree   int
	Basement *big.Int
	Power    *big.Int
	IsExact  bool
}

// Record converts the case to its on-disk form.
func (c Case) Record() Record {
	return Record{
		Exponent: strconv.Itoa(c.Degree),
		Basement: c.Basement.String(),
		Power:    c.Power.String(),
		IsExact:  c.IsExact,
	}
}

// Parse validates the record and converts it to a Case.
func (r Record) Parse() (Case, error) {
	degree, err := strconv.Atoi(r.Exponent)
	if err != nil || degree < 1 {
		return Case{}, fmt.Errorf("%w: exponent %q", ErrMalformed, r.Exponent)
	}
	basement, ok := new(big.Int).SetString(r.Basement, 10)
	if !ok || basement.Sign() < 0 {
		return Case{}, fmt.Errorf("%w: basement %q", ErrMalformed, r.Basement)
	}
	power, ok := new(big.Int).SetString(r.Power, 10)
	if !ok || power.Sign() < 0 {
		return Case{}, fmt.Errorf("%w: power %q", ErrMalformed, truncate(r.Power))
	}
	return Case{Degree: degree, Basement: basement, Power: power, IsExact: r.IsExact}, nil
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}

// Save writes one case to path. The file is replaced atomically, so readers
// never observe a partial fixture.
func Save(path string, c Case) error {
	data, err := json.MarshalIndent(c.Record(), "", "  ")
	if err != nil {
		return fmt.Errorf("fixture: encode %s: %w", path, err)
	}
	if err := safefile.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("fixture: write %s: %w", path, err)
	}
	return nil
}

// Load reads one fixture file. The case is named after the file.
func Load(path string) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Case{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Case{}, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	c, err := r.Parse()
	if err != nil {
		return Case{}, fmt.Errorf("%s: %w", path, err)
	}
	c.Name = filepath.Base(path)
	return c, nil
}

// LoadGlob loads every file matching pattern, in lexical order.
func LoadGlob(pattern string) ([]Case, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFixtures, pattern)
	}

	cases := make([]Case, 0, len(paths))
	for _, p := range paths {
		c, err := Load(p)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}
