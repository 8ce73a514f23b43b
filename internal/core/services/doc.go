// Package services implements the driving port interfaces.
//
// The two materializers share key resolution, the root rule and the
// depth-first walker; they differ only in how a parent candidate and a
// node's children are found. NaiveMaterializer scans the record set,
// IndexedMaterializer looks them up in maps built once per call.
//
// TreeService and SampleService orchestrate calls to driven ports
// (record sources, hierarchy stores).
package services
