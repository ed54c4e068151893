// Package trace records nested spans for a restyle run: a driver span per
// batch of files, a file span per input (stdin included) and a stage span per
// pipeline stage. Files run concurrently, so nesting is carried by parent span
// IDs rather than by output order.
//
//	restyle --trace=- --trace-level=stage src/
//
// Spans travel in a context.Context:
//
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, trace.CurrentSpan(ctx))
//	ctx = trace.WithSpan(ctx, span)
//	defer span.End("")
package trace
