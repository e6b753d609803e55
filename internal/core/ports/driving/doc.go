// Package driving defines interfaces that external actors (CLI, TUI, MCP,
// the drop-folder watcher) use to interact with core services.
//
// Implementations of these interfaces live in internal/core/services.
package driving
