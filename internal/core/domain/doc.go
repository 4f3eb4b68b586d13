// Package domain defines the core business entities for the Sercha tagger.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A processed file and its ranked keywords
//   - DocumentID: The opaque key a Document is stored under
//   - ResultSet: Documents accumulated across one traversal
//   - ErrorLog: Per-item failures accumulated across one traversal
//   - RankedTerm: A scored candidate keyword
//   - Settings: Run configuration
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
