// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The core services depend on these interfaces; adapters under
// internal/adapters/driven implement them. External AI capabilities
// (embeddings, generative text) are consumed exclusively through the
// ports here so the scoring pipeline stays deterministic and testable.
package driven
