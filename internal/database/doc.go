// Package database provides SQLite-based storage for line items.
//
// ItemDB is the repository a report's items come from when they are not
// read from a file. It implements source.Source.
//
// The database is a single file under the XDG data directory, opened with
// one connection through the CGO-free modernc.org/sqlite driver.
//
// Generated reports are never stored; only their input items are.
package database
