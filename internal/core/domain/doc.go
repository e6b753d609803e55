// Package domain defines the core business entities for docsift.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document with its extracted text
//   - SearchResult: A ranked match with highlighted snippets
//   - UploadProgress: Per-file status of an upload batch
//   - Settings: Tunables for search, upload and storage
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
