// Package reconcile is the product reconciliation engine of the enumeration report.
//
// It cross-references the products of the interferogram pipeline (acquisition
// lists, ifg-cfgs, ifgs and audit-trail entries) against each other and against
// an expected enumeration of date pairs, one track at a time. The package is
// purely in-memory: callers hand it raw search records and get rows back.
//
// # Architecture
//
// The engine consists of five parts:
//
// 1. Hasher: derives an IdentityKey from a record's reference and secondary scene
// groups. DigestHasher reproduces the enumerator's MD5 key; PairHasher keys
// acquisition-based products after translating acquisition ids to scene ids.
//
// 2. Partition: groups records by track using an ordered list of track field names.
//
// 3. Store: indexes one collection by identity key (deduplicated, most recent
// creation_timestamp wins) and by canonical date pair (last write wins).
//
// 4. NormalizeEnumeration: parses the human-entered date pair list into sorted,
// deduplicated canonical pairs, dropping malformed tokens with a warning.
//
// 5. Reconcile: builds the union of date pairs across sources and emits one
// ComparisonRow per pair, plus the key-joined current products view.
//
// # Missing values
//
// Lookups return Ref values instead of falsy sentinels. A Ref that was not found
// renders as "MISSING" in reports. Records that cannot be keyed are kept out of
// identity joins but stay visible through the date pair view.
//
// # Usage Example
//
//	tracks, err := reconcile.Partition(acqLists)
//	if err != nil {
//	    return err // every record must resolve to a track
//	}
//	acq := reconcile.NewStore(tracks["42"])
//	audit := reconcile.NewStore(auditTrail)
//	result := reconcile.Reconcile(reconcile.CompareInput{
//	    AcqLists:    acq,
//	    AuditTrail:  audit,
//	    Enumeration: reconcile.NormalizeEnumeration("20210105-20210101", log),
//	})
package reconcile
