// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for CSV ingestion and the numeric
// policy. This file defines:
//   - documented defaults (constants),
//   - CSVOption / csvOptions (functional options with internal state),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherCSVOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit header detection.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by comparisons.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set and Apply.
	DefaultValidateNaNInf = true
)

// CSV ingestion policy.
const (
	// DefaultCSVHeader: the first record is data unless WithHeader(true) is given.
	DefaultCSVHeader = false

	// DefaultCSVComma is the field delimiter.
	DefaultCSVComma = ','
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicCommaInvalid = "matrix: WithComma: delimiter must be a printable rune other than quote, CR or LF"
)

// ---------- Public option type (functional) ----------

// CSVOption mutates internal CSV options. Safe to apply repeatedly (idempotent).
type CSVOption func(*csvOptions)

// csvOptions holds ingestion settings; fields are unexported on purpose.
type csvOptions struct {
	header bool // skip the first record
	comma  rune // field delimiter
}

// defaultCSVOptions returns the documented defaults.
func defaultCSVOptions() csvOptions {
	return csvOptions{
		header: DefaultCSVHeader,
		comma:  DefaultCSVComma,
	}
}

// WithHeader marks the first record as a header row that must be skipped.
// Header detection is never implicit.
func WithHeader(skip bool) CSVOption {
	return func(o *csvOptions) { o.header = skip }
}

// WithComma sets the field delimiter (e.g. ';' or '\t').
// Panics on '"', '\r', '\n' or the zero rune (programmer error).
func WithComma(r rune) CSVOption {
	if r == 0 || r == '"' || r == '\r' || r == '\n' {
		panic(panicCommaInvalid)
	}

	return func(o *csvOptions) { o.comma = r }
}

// gatherCSVOptions applies opts over defaults in order; nil options are skipped.
func gatherCSVOptions(opts ...CSVOption) csvOptions {
	o := defaultCSVOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
