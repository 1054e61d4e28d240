// Package report renders line items into CSV or HTML documents whose content
// depends on the role of the viewer.
//
// The package is built around three pieces:
//   - Strategy: the per-role rendering policy (AdminStrategy, UserStrategy)
//   - Render: the fixed header, body, footer sequence over a Strategy
//   - Generator: picks the Strategy for a viewer and runs Render
//
// Rendering is a pipeline of pure steps. Each phase returns the text it
// contributes, and the body also returns the total of the rows it emitted.
// No mutable buffer is shared between phases or calls, and any number of
// goroutines may call Generator.GenerateReport concurrently.
//
// Writer and Digest handle the output side: encoding the document for a
// destination and fingerprinting it.
package report
