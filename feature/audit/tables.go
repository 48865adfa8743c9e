package audit

import (
	"encoding/json"
	"sort"
	"strings"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/utils"
	"enumeration-report/core/workbook"
)

// Sheet names, in workbook order.
const (
	SheetEnumeratedProducts = "Enumerated Products"
	SheetMissingSLCs        = "Missing SLCs"
	SheetDatePairs          = "Enumerated Date Pairs"
	SheetAcquisitions       = "Acquisitions"
	SheetLocalizedSLCs      = "Localized SLCs"
	SheetIfgCfgs            = "IFG CFGs"
	SheetIfgs               = "IFGs"
	SheetAuditTrail         = "Audit Trail"
)

// placeholder fills time cells of acquisitions that are not in the catalog.
const placeholder = "-"

// excludedAuditFields are too large to be useful in a cell.
var excludedAuditFields = map[string]struct{}{
	"union_geojson": {},
	"context":       {},
}

// BuildTables lays one track's audit out as the eight report sheets.
func BuildTables(data TrackData, a Analysis) []workbook.Sheet {
	return []workbook.Sheet{
		enumeratedProducts(a.Products),
		missingSLCs(a),
		datePairs(a.DatePairs),
		listing(SheetAcquisitions, "acquisition id", data.Acquisitions),
		listing(SheetLocalizedSLCs, "slc id", data.SLCs),
		listing(SheetIfgCfgs, "ifg-cfg id", data.IfgCfgs),
		listing(SheetIfgs, "ifg id", data.Ifgs),
		auditTrail(data.AuditTrail),
	}
}

func enumeratedProducts(products []ProductStatus) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   SheetEnumeratedProducts,
		Header: []string{"acquisition-list id", "slcs localized?", "ifg-cfg generated?", "ifg generated?", "missing slc ids", "missing acq ids"},
		Rows:   make([][]any, 0, len(products)),
	}
	for _, p := range products {
		sheet.Rows = append(sheet.Rows, []any{
			p.AcqList, p.Localized, p.IfgCfg, p.Ifg,
			strings.Join(p.MissingSLCs, " "), strings.Join(p.MissingAcqs, " "),
		})
	}
	return sheet
}

func missingSLCs(a Analysis) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   SheetMissingSLCs,
		Header: []string{"slc id", "acquisition id", "starttime", "endtime"},
		Rows:   make([][]any, 0, len(a.MissingSLCs)),
	}
	for _, id := range a.MissingSLCs {
		row := []any{id, placeholder, placeholder, placeholder}
		if acq, ok := a.AcquisitionOf(id); ok {
			row[1] = acq.SourceID()
			row[2] = sourceString(acq, "starttime")
			row[3] = sourceString(acq, "endtime")
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

func datePairs(pairs []reconcile.DatePair) workbook.Sheet {
	sheet := workbook.Sheet{Name: SheetDatePairs, Header: []string{"expected date pairs"}, Rows: make([][]any, 0, len(pairs))}
	for _, p := range pairs {
		sheet.Rows = append(sheet.Rows, []any{string(p)})
	}
	return sheet
}

// listing writes id, starttime and endtime of every record, sorted by id.
func listing(name, idHeader string, records []reconcile.Record) workbook.Sheet {
	sorted := append([]reconcile.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	sheet := workbook.Sheet{
		Name:   name,
		Header: []string{idHeader, "starttime", "endtime"},
		Rows:   make([][]any, 0, len(sorted)),
	}
	for _, r := range sorted {
		sheet.Rows = append(sheet.Rows, []any{r.ID, sourceString(r, "starttime"), sourceString(r, "endtime")})
	}
	return sheet
}

// auditTrail dumps the metadata of every entry. Columns are the sorted union of
// metadata keys.
func auditTrail(records []reconcile.Record) workbook.Sheet {
	columns := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Metadata() {
			if _, skip := excludedAuditFields[k]; !skip {
				columns[k] = struct{}{}
			}
		}
	}
	header := make([]string, 0, len(columns))
	for k := range columns {
		header = append(header, k)
	}
	sort.Strings(header)

	sheet := workbook.Sheet{Name: SheetAuditTrail, Header: header, Rows: make([][]any, 0, len(records))}
	for _, r := range records {
		met := r.Metadata()
		row := make([]any, len(header))
		for i, k := range header {
			row[i] = cellValue(met[k])
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

func sourceString(r reconcile.Record, key string) string {
	v, ok := r.SourceValue(key)
	if !ok || v == nil {
		return placeholder
	}
	return utils.ToString(v)
}

// cellValue keeps scalars as they are and encodes nested values as JSON.
func cellValue(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case string, bool, float64:
		return v
	case []any, map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return utils.ToString(v)
		}
		return string(b)
	default:
		return utils.ToString(v)
	}
}
