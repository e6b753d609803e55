// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search and snippet logic is pure Go. The library, upload and
// settings services reach storage, extraction and configuration only
// through driven ports.
package services
