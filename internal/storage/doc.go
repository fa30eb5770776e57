// Package storage is reel's local key-value persistence layer.
//
// # Overview
//
// Everything reel remembers between runs (accounts, the active session, the
// wishlist, the theme) is a string value stored under one of a handful of
// well-known keys. Structured values are JSON encoded by their owners; this
// package never looks inside them.
//
// # Layers
//
//	Backend   raw persistence (JSON file, SQLite, memory)
//	Adapter   never-failing Read/Write/Remove + change publication
//	Watcher   polls a Backend and reports changes made by other processes
//
// The Adapter is what every store uses. When no backend is configured, or a
// backend call fails, it degrades to a no-op: reads report the key as absent
// and writes are dropped after a warning is logged. Callers never see a
// persistence error.
//
// # Change notifications
//
// Each Adapter has a context id. Successful writes publish a changebus.Event
// tagged with that id, so other contexts sharing the bus re-read the key
// while the writer itself is not notified. Separately running reel processes
// are reached through the Watcher, which publishes events with the external
// origin.
//
// # Backends
//
//   - FileBackend: one JSON object file, replaced atomically on every write
//   - SQLiteBackend: a single kv table in a modernc.org/sqlite database
//   - MemoryBackend: process-local map for tests and the "memory" mode
package storage
