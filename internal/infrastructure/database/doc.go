// Package database provides SQLite connectivity for Lumen Core.
//
// This package manages:
//   - Opening the SQLite database with WAL mode and busy timeout
//   - Running embedded schema migrations at startup
//   - Connection health checks
//   - Lifecycle management (open/close)
//
// SQLite is used as a single-writer embedded store; the connection pool
// is limited to one open connection accordingly.
//
// # Usage
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
