// Package storage bootstraps the durable key-value store used by the
// session layer.
//
// # Overview
//
// The package provides:
//  1. SQLite bootstrap (InitDatabase, RunMigrations): opens the database file
//     with the pure-Go modernc driver and applies the embedded goose
//     migrations that create the "metadata" table.
//  2. Redis bootstrap (NewRedisClient) for installations keeping client state
//     in Redis.
//  3. Open, which picks the backend from config and returns a
//     metadata.Repository plus an io.Closer.
//
// # Error Handling
//
// Failures to reach the store are reported as ErrUnavailable; an unknown
// backend name as ErrUnknownBackend. Match with errors.Is.
package storage
