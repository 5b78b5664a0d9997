// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the cost-matrix numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Notes:
//   - Forbidden pairs: ±Inf is always forbidden. A finite threshold t widens
//     the rule to |v| ≥ t so callers can keep "big number" placeholders
//     (1e18, MaxFloat64) instead of converting them to +Inf.
//   - NaN is rejected at ingestion (ErrNaN) by default. WithNoValidateNaN
//     accepts NaN and treats such cells as forbidden.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaN toggles NaN rejection on batch ingestion.
	DefaultValidateNaN = true
)

// defaultForbiddenThreshold is +Inf: only infinite values are forbidden.
var defaultForbiddenThreshold = math.Inf(1)

const panicThresholdInvalid = "matrix: WithForbiddenThreshold: threshold must be > 0 and not NaN"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective numeric policy after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	forbiddenThreshold float64 // > 0; +Inf means "only ±Inf is forbidden"
	validateNaN        bool    // DefaultValidateNaN
}

// WithForbiddenThreshold marks every value with |v| ≥ t as forbidden.
//
// Inputs:
//   - t: positive threshold, +Inf allowed (restores the default).
//
// Errors:
//   - Panics with a stable message when t ≤ 0 or NaN.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithForbiddenThreshold(t float64) Option {
	if math.IsNaN(t) || t <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.forbiddenThreshold = t }
}

// WithNoValidateNaN accepts NaN costs on ingestion; NaN cells become forbidden.
func WithNoValidateNaN() Option {
	return func(o *Options) { o.validateNaN = false }
}

// WithValidateNaN restores the default NaN rejection.
func WithValidateNaN() Option {
	return func(o *Options) { o.validateNaN = true }
}

// NewOptions resolves opts on top of the documented defaults.
// Most callers never need this: constructors accept ...Option directly.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// ForbiddenThreshold reports the effective |v| threshold (+Inf by default).
func (o Options) ForbiddenThreshold() float64 { return o.forbiddenThreshold }

// ValidateNaN reports whether NaN costs are rejected on ingestion.
func (o Options) ValidateNaN() bool { return o.validateNaN }

// gatherOptions applies user setters on top of defaults (last-writer-wins).
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		forbiddenThreshold: defaultForbiddenThreshold,
		validateNaN:        DefaultValidateNaN,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// isForbidden is the single source of truth for the forbidden-pair rule.
// NaN is forbidden too: it only reaches here when validation is disabled.
func isForbidden(v, threshold float64) bool {
	if math.IsNaN(v) {
		return true
	}

	return math.Abs(v) >= threshold
}
