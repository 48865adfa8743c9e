// Package enumeration generates the AOI enumeration comparison report.
//
// For every track of an AOI's acquisition lists it reconciles the acquisition
// lists, ifg-cfgs and ifgs listed in the audit trail, compares them with the
// user's expected date pairs, and publishes a workbook with four sheets:
//
//   - Current Products: each acquisition list joined to its ifg-cfg and ifg by key
//   - HySDS Enumerated Date Pairs: date pairs produced by the pipeline
//   - Input Enumerated Date Pairs: the normalized expected enumeration
//   - Enumeration Comparison: one row per date pair across all sources
//
// Tracks without audit-trail entries are skipped. Tracks are processed
// concurrently; the first failing track aborts the run.
package enumeration
