// Package diag turns run failures into stable, renderable diagnostics.
//
// Errors from the pipeline, the literal restorer, the filters and the file
// driver are classified by FromError into a Diagnostic with a compact code
// (LIT1001, FLT2001, IO3001, CFG4001 ...). A literal span mismatch carries the
// original and filtered lines as notes, with a caret under the first byte that
// differs.
//
// Render prints a diagnostic for terminals; Bag collects diagnostics from files
// processed concurrently and returns them in a deterministic order.
package diag
