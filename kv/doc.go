// Package kv provides the key-value stores that hold a sparse tensor's
// nonzero entries.
//
// Every store implements the same Store contract (upsert, lookup, and a
// restartable iteration) and keys entries by the packed coordinate key from
// package coord. Three variants are available:
//
//   - Ordered: a balanced B-tree (github.com/google/btree), ascending iteration
//   - Hash: a Go map, unspecified iteration order
//   - BPTree: a multiway B+Tree engine with node splitting, ascending iteration
//
// Stores are not safe for concurrent use. Entries are never removed.
package kv
