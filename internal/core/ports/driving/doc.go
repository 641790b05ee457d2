// Package driving provides interfaces for the application's use cases
// (primary/inbound ports), implemented by the core services and consumed
// by presentation adapters such as the CLI.
package driving
