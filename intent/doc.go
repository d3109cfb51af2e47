// Package intent implements the decision core of an intent-driven cloud
// resource manager: it turns free-text user priorities into a normalized
// priority vector and drives every downstream resource decision off that
// vector.
//
// # Reading Guide
//
// Start with these files to understand the pipeline:
//   - vector.go: the priority Vector, the common currency of every component
//   - extractor.go: free text → Vector via keyword scoring
//   - history.go: per-user history, prediction, and consistency scoring
//   - negotiator.go: Vector → service Contract with conflict relaxation
//   - tradeoff.go: Vector + candidate configuration → match score
//   - placement.go: Vector + VM request + host snapshots → placement decision
//
// Data flow is strictly one-directional: the Extractor feeds the Tracker
// (learning) and, in parallel, the Negotiator and the scoring engines. No
// component calls back into an upstream one.
//
// All components are stateless and safe for concurrent use except the
// Tracker's HistoryStore, which serializes access per user key.
//
// The package performs no I/O on the decision path. Host snapshots and VM
// requests come from the caller (typically a datacenter simulator) as
// read-only data; freshness is the caller's responsibility.
package intent
