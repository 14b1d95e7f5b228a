// Package views orchestrates the read and write paths.
//
// Every read follows the same shape: build the view's filter plan,
// fan it out through the relay pool, validate the raw result, hand the
// survivors to the pure reconcilers, cache the derived view. Every
// write is the inverse: derive the current view first, run the
// conflict-of-intent guards against it, and only then sign and publish
// a draft. Guards return typed errors; nothing here publishes silently
// past a conflict.
//
// The service holds no view state of its own. Evict the cache and
// every answer is re-derived from relay records, byte for byte.
package views
