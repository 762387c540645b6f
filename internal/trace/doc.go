// Package trace records what reflectc is doing while it runs.
//
// Events are grouped into spans (begin/end pairs) at four scopes: the whole
// invocation (driver), a pipeline phase such as lex, parse, layout or
// serialize (pass), one translation unit of a directory run (unit) and one
// grammar construct inside the parser (node). The level picked on the
// command line decides which scopes are kept:
//
//	off     nothing
//	error   nothing is streamed; the ring is dumped when the run crashes
//	phase   driver and pass spans
//	detail  plus per-unit spans
//	debug   everything, including node spans from the parser
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer sp.End("")
package trace
