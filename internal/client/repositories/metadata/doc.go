// Package metadata provides the client-side key-value store that survives
// application restarts.
//
// # Overview
//
// The package defines a Repository interface (Get/Set/Delete/List) and two
// implementations:
//
//   - SQLiteRepository stores rows in the local "metadata" table through a
//     dbx.DBTX (*sql.DB or *sql.Tx).
//   - RedisRepository stores values as plain Redis strings under a key prefix,
//     for installations that keep client state in a shared Redis.
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "user", payload)
//	v, _ := repo.Get(ctx, "user") // nil when absent
//	_ = repo.Delete(ctx, "user")
package metadata
