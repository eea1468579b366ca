// Package dqaf defines the data-quality assessment vocabulary: the
// dimensions that can be assessed, the controlled label set for each
// dimension, and the IRIs that results map to.
//
// The vocabulary is exposed two ways. The predicate names used on result
// triples are registered with the semstreams vocabulary registry in
// init() so downstream graph consumers can resolve them. The dimension
// catalogue itself is an explicit Registry constructed with NewRegistry
// and passed into the assessment runner, so label sets are immutable
// configuration rather than hidden package state.
package dqaf
