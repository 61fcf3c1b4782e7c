// Package orchestrator wires the load → parse → render pass → serialise
// pipeline behind a single entry point, with dependency injection for callers
// that need to swap any stage.
package orchestrator
