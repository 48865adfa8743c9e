package reconcile

import (
	"sort"

	"enumeration-report/core/utils"
)

// CompareInput bundles one track's indexed collections and the expected enumeration.
type CompareInput struct {
	AcqLists    *Store
	IfgCfgs     *Store
	Ifgs        *Store
	AuditTrail  *Store
	Enumeration []DatePair
}

// Result is the full reconciliation of one track.
type Result struct {
	Products   []ProductRow      `json:"products"`
	Comparison []ComparisonRow   `json:"comparison"`
	Summary    ComparisonSummary `json:"summary"`
}

// Reconcile runs the coverage join and the enumeration comparison for one track.
func Reconcile(in CompareInput) Result {
	comparison := Compare(in)
	return Result{
		Products:   CurrentProducts(in.AcqLists, in.IfgCfgs, in.Ifgs),
		Comparison: comparison,
		Summary:    Summarize(comparison),
	}
}

// ComparisonSummary provides aggregate counts over comparison rows.
type ComparisonSummary struct {
	// Total is the number of distinct date pairs.
	Total int `json:"total"`

	// Paired counts date pairs requested by the input enumeration.
	Paired int `json:"paired"`

	// NotEnumerated counts date pairs observed in the pipeline but not requested.
	NotEnumerated int `json:"not_enumerated"`

	// MissingAcqList counts date pairs with no acquisition list.
	MissingAcqList int `json:"missing_acq_list"`

	// MissingAuditTrail counts date pairs with no audit-trail entry.
	MissingAuditTrail int `json:"missing_audit_trail"`

	// Failed counts audit-trail entries carrying a failure reason.
	Failed int `json:"failed"`
}

// Compare builds one row per date pair found in the audit trail, the acquisition
// lists or the enumeration, latest pair first. Absence in a source is reported
// in the row, never by dropping it.
func Compare(in CompareInput) []ComparisonRow {
	enumerated := make(map[DatePair]struct{}, len(in.Enumeration))
	for _, p := range in.Enumeration {
		enumerated[p] = struct{}{}
	}

	universe := buildUnion(in.AcqLists, in.AuditTrail, in.Enumeration)

	rows := make([]ComparisonRow, 0, len(universe))
	for pair := range universe {
		rows = append(rows, buildComparisonRow(pair, in, enumerated))
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].DatePair > rows[j].DatePair
	})
	return rows
}

// buildUnion creates the union of date pairs across all sources.
func buildUnion(acqLists, auditTrail *Store, enumeration []DatePair) map[DatePair]struct{} {
	union := make(map[DatePair]struct{})

	if auditTrail != nil {
		for pair := range auditTrail.byPair {
			union[pair] = struct{}{}
		}
	}

	if acqLists != nil {
		for pair := range acqLists.byPair {
			union[pair] = struct{}{}
		}
	}

	for _, pair := range enumeration {
		union[pair] = struct{}{}
	}

	return union
}

// buildComparisonRow creates a ComparisonRow for a single date pair.
func buildComparisonRow(pair DatePair, in CompareInput, enumerated map[DatePair]struct{}) ComparisonRow {
	row := ComparisonRow{
		DatePair:    pair,
		Enumeration: EnumMissing,
	}

	if _, ok := enumerated[pair]; ok {
		row.Enumeration = EnumPaired
	}

	if in.AcqLists != nil {
		if acq, ok := in.AcqLists.ByPair(pair); ok {
			row.AcqList = Found(acq.ID)
			row.Key = Found(KeyString(in.AcqLists.KeyOf(acq)))
		}
	}

	if in.AuditTrail != nil {
		if audit, ok := in.AuditTrail.ByPair(pair); ok {
			row.AuditTrail = Found(audit.ID)
			if reason, ok := audit.MetadataValue("failure_reason"); ok && !utils.IsEmpty(reason) {
				row.AuditComment = utils.ToString(reason)
			}
		}
	}

	return row
}

// CurrentProducts joins every acquisition list to its ifg-cfg and ifg by identity key,
// latest end time first.
func CurrentProducts(acqLists, ifgCfgs, ifgs *Store) []ProductRow {
	if acqLists == nil {
		return []ProductRow{}
	}
	keys := acqLists.KeysByEndTime()
	rows := make([]ProductRow, 0, len(keys))
	for _, key := range keys {
		acq, _ := acqLists.ByKey(key)
		row := ProductRow{
			AcqList: Found(acq.ID),
			Key:     Found(string(key)),
		}
		if pair, err := DatePairOf(acq); err == nil {
			row.DatePair = pair
		}
		row.IfgCfg = lookupByKey(ifgCfgs, key)
		row.Ifg = lookupByKey(ifgs, key)
		rows = append(rows, row)
	}
	return rows
}

func lookupByKey(s *Store, key IdentityKey) Ref {
	if s == nil {
		return Ref{}
	}
	if r, ok := s.ByKey(key); ok {
		return Found(r.ID)
	}
	return Ref{}
}

// Summarize counts presence and absence across comparison rows.
func Summarize(rows []ComparisonRow) ComparisonSummary {
	summary := ComparisonSummary{Total: len(rows)}
	for _, row := range rows {
		if row.Enumeration == EnumPaired {
			summary.Paired++
		} else if row.AcqList.Found {
			summary.NotEnumerated++
		}
		if !row.AcqList.Found {
			summary.MissingAcqList++
		}
		if !row.AuditTrail.Found {
			summary.MissingAuditTrail++
		}
		if row.AuditComment != "" {
			summary.Failed++
		}
	}
	return summary
}
