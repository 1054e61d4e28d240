// Package source supplies the line items a report is generated from.
//
// A Source returns a finite, in-memory slice of items. Implementations in
// this package read items from files (YAML, JSON or CSV) or hold them in
// memory; the database package provides a SQLite-backed Source.
//
// Items are validated when they are loaded: an item without an id or a
// numeric value fails the whole load with ErrMalformedItem, so rendering
// never starts on partial data.
package source
