package fixture

import "errors"

var (
	// ErrMalformed indicates a record that does not parse.
	ErrMalformed = errors.New("fixture: malformed record")

	// ErrNoFixtures indicates a pattern that matched no files.
	ErrNoFixtures = errors.New("fixture: no fixture files found")

	// ErrMismatch indicates a root that differs from the fixture.
	ErrMismatch = errors.New("fixture: root mismatch")
)
