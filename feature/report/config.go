package report

// Config holds settings shared by the report pipelines.
type Config struct {
	// OutputDir is where product directories are created.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// Version is stamped into product names and dataset documents.
	Version string `mapstructure:"version" default:"v2.0"`
	// Concurrency bounds how many tracks are processed at once.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// Upload publishes products to object storage after writing them locally.
	Upload bool `mapstructure:"upload" default:"false"`
	// Ledger records every published product in the run ledger database.
	Ledger bool `mapstructure:"ledger" default:"false"`
}
