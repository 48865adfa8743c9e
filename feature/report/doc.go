// Package report holds what the enumeration and audit reports share.
//
// # Publishing
//
// A Product is one track's rendered report. Publisher writes it into a fresh
// product directory named by ProductID:
//
//	<output_dir>/<product>/<product>.xlsx
//	<output_dir>/<product>/<product>.dataset.json
//	<output_dir>/<product>/<product>.met.json
//
// When configured it then uploads the three files under <prefix>/<product>/ in
// object storage and records a ReportRun row in the ledger database.
// VerifyUploads later checks that uploaded runs still have all three objects.
//
// # Sources
//
// Source is the catalog interface the pipelines query; core/search implements it.
//
// # Concurrency
//
// ForEachTrack fans tracks out over an errgroup with a concurrency limit. Each
// track writes only its own product directory and object keys.
package report
