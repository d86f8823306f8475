// Package tasks runs bulk data operations against storage with real-time progress reporting.
//
// # Core Operations
//
//  1. [Engine.Seed] : load a [Fixture] of states, cities, amenities, users and places
//     - Parents are created before children; places refer to cities, users and amenities by name
//     - Records that cannot be created are reported in [SeedResult.Failures] and skipped
//
//  2. [Engine.BulkExport] : write the places of every state to one file per state
//     - Reads one storage snapshot, then renders states concurrently with a worker pool
//     - Writes a manifest summarizing the files produced
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
