// Package workbook renders report tables as xlsx spreadsheets using excelize.
//
// Each Sheet becomes one worksheet with a bold header row. Cell values are
// written as given; absent counterparts are expected to be rendered by the
// caller (the reports write "MISSING").
package workbook
