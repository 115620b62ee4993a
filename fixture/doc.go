// Package fixture reads, writes and checks root extraction fixtures.
//
// A fixture file is one indented JSON object holding a degree, a basement,
// its power and whether the power is an exact power of the basement, all
// numbers as decimal strings:
//
//	{
//	  "exponent": "3",
//	  "basement": "12345",
//	  "power": "1881365963625",
//	  "is_exact": true
//	}
//
// SpeedPlan lists the degree and basement length pairs of the speed suite.
// Generate creates cases for one plan entry, WritePlan saves them atomically,
// LoadGlob reads them back and Verify checks a root engine against them in
// parallel.
package fixture
