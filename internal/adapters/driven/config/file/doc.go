// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - HierarchyStore: hierarchy descriptors kept under [tree.<name>] tables
package file
