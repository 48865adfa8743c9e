package enumeration

import (
	"sort"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/workbook"
)

// Sheet names, in workbook order.
const (
	SheetCurrentProducts = "Current Products"
	SheetHySDSPairs      = "HySDS Enumerated Date Pairs"
	SheetInputPairs      = "Input Enumerated Date Pairs"
	SheetComparison      = "Enumeration Comparison"
)

// BuildTables lays one track's reconciliation out as the four report sheets.
func BuildTables(result reconcile.Result, enumeration []reconcile.DatePair) []workbook.Sheet {
	return []workbook.Sheet{
		currentProducts(result.Products),
		hysdsPairs(result.Products),
		inputPairs(enumeration),
		comparison(result.Comparison),
	}
}

func currentProducts(products []reconcile.ProductRow) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   SheetCurrentProducts,
		Header: []string{"date pair", "acquisition-list", "ifg-cfg", "ifg", "hash"},
		Rows:   make([][]any, 0, len(products)),
	}
	for _, p := range products {
		sheet.Rows = append(sheet.Rows, []any{
			string(p.DatePair), p.AcqList.String(), p.IfgCfg.String(), p.Ifg.String(), p.Key.String(),
		})
	}
	return sheet
}

func hysdsPairs(products []reconcile.ProductRow) workbook.Sheet {
	seen := make(map[reconcile.DatePair]struct{}, len(products))
	for _, p := range products {
		if p.DatePair != "" {
			seen[p.DatePair] = struct{}{}
		}
	}
	pairs := make([]reconcile.DatePair, 0, len(seen))
	for pair := range seen {
		pairs = append(pairs, pair)
	}
	return pairSheet(SheetHySDSPairs, pairs)
}

func inputPairs(enumeration []reconcile.DatePair) workbook.Sheet {
	return pairSheet(SheetInputPairs, append([]reconcile.DatePair(nil), enumeration...))
}

// pairSheet lists date pairs latest first.
func pairSheet(name string, pairs []reconcile.DatePair) workbook.Sheet {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i] > pairs[j] })
	sheet := workbook.Sheet{Name: name, Header: []string{"date pair"}, Rows: make([][]any, 0, len(pairs))}
	for _, pair := range pairs {
		sheet.Rows = append(sheet.Rows, []any{string(pair)})
	}
	return sheet
}

func comparison(rows []reconcile.ComparisonRow) workbook.Sheet {
	sheet := workbook.Sheet{
		Name:   SheetComparison,
		Header: []string{"date pair", "input enumeration", "hysds enumeration", "audit trail", "audit comment", "hash"},
		Rows:   make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []any{
			string(r.DatePair), string(r.Enumeration), r.AcqList.String(), r.AuditTrail.String(), r.AuditComment, r.Key.String(),
		})
	}
	return sheet
}
