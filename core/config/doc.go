// Package config provides configuration management for the enumeration report.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of every
// section, so each package declares its own settings next to the code using them.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Search: Elasticsearch addresses, index patterns and circuit breaker
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: run ledger connection details
//   - Log: Logging level and format
//   - Report: output directory, product version, track concurrency
//
// Nested keys map to environment variables with "." replaced by "_"
// (search.indices.ifg -> SEARCH_INDICES_IFG).
//
// # Job Context
//
// LoadRunContext reads the per-job _context.json holding aoi_id, aoi_index and date_pairs.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Search.Addresses)
package config
