// Package database opens the optional run ledger database.
//
// It uses GORM with the MySQL driver in production and the SQLite driver for
// local runs and tests. The connection is optional: report generation never
// depends on it, so callers log a warning and continue when Connect fails.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Run ledger disabled", zap.Error(err))
//	}
package database
