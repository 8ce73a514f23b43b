// Package snapshot reads and writes record sets as files.
//
// Two formats are supported: JSON, readable and easy to hand-edit, and
// CBOR, which keeps each value's kind exactly (a float 3.0 stays a float).
// Both encode a list of {"state": n, "fields": {...}} objects in record
// order.
package snapshot
