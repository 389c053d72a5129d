package windc

import "time"

// Decision is a value the caller either picks explicitly or leaves to
// the library.
type Decision[T any] struct {
	manual bool
	value  T
}

// Auto lets the library decide.
func Auto[T any]() Decision[T] { return Decision[T]{} }

// Manual picks v explicitly.
func Manual[T any](v T) Decision[T] { return Decision[T]{manual: true, value: v} }

// IsAuto reports whether the library decides.
func (d Decision[T]) IsAuto() bool { return !d.manual }

// Value returns the explicit value, if one was picked.
func (d Decision[T]) Value() (T, bool) { return d.value, d.manual }

// Or returns the explicit value, or def when Auto.
func (d Decision[T]) Or(def T) T {
	if d.manual {
		return d.value
	}
	return def
}

// Knowledge is a value a backend may or may not be able to report.
type Knowledge[T any] struct {
	known bool
	value T
}

// Known wraps a reported value.
func Known[T any](v T) Knowledge[T] { return Knowledge[T]{known: true, value: v} }

// Unknown is the absent value.
func Unknown[T any]() Knowledge[T] { return Knowledge[T]{} }

// IsKnown reports whether the value was reported.
func (k Knowledge[T]) IsKnown() bool { return k.known }

// Value returns the reported value, if any.
func (k Knowledge[T]) Value() (T, bool) { return k.value, k.known }

// Or returns the reported value, or def when unknown.
func (k Knowledge[T]) Or(def T) T {
	if k.known {
		return k.value
	}
	return def
}

// Timeout bounds a blocking wait. The zero value waits forever.
type Timeout struct {
	set bool
	d   time.Duration
}

// TimeoutInfinite waits forever.
func TimeoutInfinite() Timeout { return Timeout{} }

// TimeoutAfter waits at most d.
func TimeoutAfter(d time.Duration) Timeout { return Timeout{set: true, d: d} }

// IsInfinite reports whether the wait is unbounded.
func (t Timeout) IsInfinite() bool { return !t.set }

// Duration returns the bound, if one was set.
func (t Timeout) Duration() (time.Duration, bool) { return t.d, t.set }
