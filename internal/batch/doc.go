// Package batch renders one set of items for many viewers concurrently.
//
// Each viewer gets an independent render through report.Generator, which
// shares no state between calls, so the only synchronization needed is the
// concurrency limit.
package batch
