// Package trace records what the IR builders do while a stream is being
// materialized.
//
// Tracing is off by default. The CLI enables it with:
//
//	irmodel replay --trace=- --trace-level=detail stream.toml
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events for post-mortem dumps
//   - MultiTracer: fans events out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: crash dumps only
//   - LevelPhase: driver operations and module spans
//   - LevelDetail: function bodies
//   - LevelDebug: individual forward references
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeModule, "module:demo", 0)
//	defer span.End("")
package trace
