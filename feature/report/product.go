package report

import (
	"fmt"
	"time"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/workbook"
)

// Product name prefixes, one per report kind.
const (
	KindEnumeration = "AOI_Enumeration_Report"
	KindAudit       = "AOI_Audit_Report"
)

const productTimeLayout = "20060102T1504"

// ProductID names a product: <kind>-<aoi>-TN<track>-<YYYYMMDDTHHMM>-<version>.
func ProductID(kind, aoiID string, track reconcile.Track, now time.Time, version string) string {
	return fmt.Sprintf("%s-%s-TN%s-%s-%s", kind, aoiID, track, now.Format(productTimeLayout), version)
}

// Product is one track's rendered report, ready to be published.
type Product struct {
	ID      string
	Kind    string
	AOIID   string
	AOI     reconcile.Record
	Track   reconcile.Track
	Sheets  []workbook.Sheet
	Summary reconcile.ComparisonSummary
}

// Rows counts data rows across every sheet.
func (p Product) Rows() int {
	n := 0
	for _, s := range p.Sheets {
		n += len(s.Rows)
	}
	return n
}

// Artifact describes where a published product ended up.
type Artifact struct {
	ProductID  string   `json:"product_id"`
	Track      string   `json:"track"`
	Dir        string   `json:"dir"`
	Files      []string `json:"files"`
	ObjectKeys []string `json:"object_keys,omitempty"`
	RunID      string   `json:"run_id,omitempty"`
}
