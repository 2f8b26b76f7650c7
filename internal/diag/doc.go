// Package diag defines the diagnostic model shared by all front-end phases.
//
// Diagnostic is the central record: a severity, a stable numeric code, a
// message, a primary source span and optional secondary notes. Phases emit
// diagnostics through a Reporter so producers stay decoupled from storage;
// BagReporter aggregates into a Bag, which supports merging, deterministic
// sorting and deduplication.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt, orchestration in internal/driver.
//
// Keep the data model deterministic: diagnostics are serialised for golden
// tests and for the standard-json driver, so field values must not depend on
// map iteration or scheduling order.
package diag
