// Package domain defines the core entities for flattree.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Value: A loosely typed, comparable field value
//   - Record: A flat row of values with a lifecycle RowState
//   - Hierarchy: Which fields link a record to its parent
//   - Token: A comparable own-key or parent-key
//   - TreeRow: A record placed in the forest with its hierarchical path
//   - Forest: The rows of one materialization plus statistics
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
