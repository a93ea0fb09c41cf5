// Package store defines the storage contract: the complete set of operations
// any backend must support, the sentinel errors those operations surface, and
// the Selector that holds the process-wide active backend.
//
// Three implementations exist: platform/memory (seeded, zero-dependency
// fallback), platform/postgres (direct SQL, owns the session store), and
// platform/hosted (hosted REST API with per-operation relational fallback).
package store
