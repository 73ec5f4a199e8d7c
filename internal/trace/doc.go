// Package trace records what the pipeline is doing: driver steps, chains,
// individual phases and, at the highest verbosity, AST nodes.
//
// It is the project's structured event log. A Tracer travels on the
// context.Context handed to every phase:
//
//	orbit build --trace=- --trace-level=phase main.orb
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: nothing is streamed; the ring is dumped on failure
//   - LevelPhase: driver, chain and phase boundaries
//   - LevelDetail: per-file events inside a phase
//   - LevelDebug: everything including node visits
package trace
