// Package domain defines the core business entities for Filehub.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileRecord: A tracked piece of content with its embedding
//   - Integration: One external platform connection per owner
//   - RemoteItem: A normalised listing entry fetched from a platform
//   - Match: A file record paired with a similarity score
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
