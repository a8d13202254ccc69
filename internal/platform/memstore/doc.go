// Package memstore provides in-memory, concurrency-safe implementations of
// the store interfaces. Records live for the lifetime of the process: there
// is no eviction, no TTL and no durability across restarts, matching the
// scope of the generation subsystem.
package memstore
