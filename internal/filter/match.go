package filter

import (
	"strings"
)

// Predicate defines a function that returns true if the given item matches a filter value.
type Predicate[T any] func(item T, filterValue string) bool

// Provider is a generic function type that encapsulates the logic for extracting
// a value of type V from an item of type T.
type Provider[T any, V any] func(T) V

// StringValueProvider extracts a single string value from an item of type T.
type StringValueProvider[T any] Provider[T, string]

// Options holds configuration for filtering behavior.
type Options[T any] struct {
	matchers map[string]Predicate[T]
}

// Option configures filter Options.
type Option[T any] func(*Options[T]) error

// NormalizeString can be used to normalize a string value for filtering/comparison.
// The value is made lowercase and has any leading and/or trailing whitespace removed.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewOptions creates Options with defaults and applies given options.
func NewOptions[T any](opt ...Option[T]) (Options[T], error) {
	opts := Options[T]{
		matchers: make(map[string]Predicate[T]),
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options[T]{}, err
		}
	}
	return opts, nil
}

// Equals returns a Predicate that checks if the value extracted by the provider
// exactly matches the filter value (case-insensitive, normalized).
//
// Example:
//
// predicate := Equals(func(s domain.ServerRecord) string { return string(s.TransportType) }),
// result := predicate(server, "SSE") // true if server.TransportType is "sse"
func Equals[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return NormalizeString(provider(item)) == NormalizeString(val)
	}
}

// Partial returns a Predicate that checks if the value extracted by the provider
// contains the filter value as a substring (case-insensitive, normalized).
//
// Example:
//
// predicate := Partial(func(s domain.ServerRecord) string { return s.Name }),
// result := predicate(server, "git") // true if server.Name contains "git"
func Partial[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return strings.Contains(NormalizeString(provider(item)), NormalizeString(val))
	}
}

// PartialAny returns a Predicate that checks if *ANY* of the values from the supplied providers
// contain the filter value as a substring (case-insensitive, normalized).
// Functionally similar to Partial, but operates on one or more StringValueProvider.
//
// Example:
//
// predicate := PartialAny(nameProvider, descriptionProvider),
// result := predicate(server, "github") // true if the name or description mention "github"
func PartialAny[T any](providers ...StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		q := NormalizeString(val)
		for _, p := range providers {
			if strings.Contains(NormalizeString(p(item)), q) {
				return true
			}
		}
		return false
	}
}

// WithMatcher adds or overrides a matcher for a filter key.
func WithMatcher[T any](key string, value Predicate[T]) Option[T] {
	return func(o *Options[T]) error {
		o.matchers[NormalizeString(key)] = value
		return nil
	}
}

// Match applies the provided filters to an item of type T using any configured Option matchers.
// Keys without an associated matcher are ignored.
func Match[T any](item T, filters map[string]string, opts ...Option[T]) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	filterOpts, err := NewOptions(opts...)
	if err != nil {
		return false, err
	}

	for key, val := range filters {
		k := NormalizeString(key)
		if k == "" {
			continue
		}

		matcher, ok := filterOpts.matchers[k]
		if !ok {
			continue
		}
		if !matcher(item, val) {
			return false, nil
		}
	}
	return true, nil
}

// Search returns the items matching query according to the predicate, preserving their order.
// A blank query returns items unchanged (the same slice, not a copy).
func Search[T any](items []T, query string, predicate Predicate[T]) []T {
	if NormalizeString(query) == "" {
		return items
	}

	matched := make([]T, 0, len(items))
	for _, it := range items {
		if predicate(it, query) {
			matched = append(matched, it)
		}
	}
	return matched
}
