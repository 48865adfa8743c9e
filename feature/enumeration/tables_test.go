package enumeration

import (
	"testing"

	"enumeration-report/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTables(t *testing.T) {
	result := reconcile.Result{
		Products: []reconcile.ProductRow{
			{DatePair: "20210105-20210101", AcqList: reconcile.Found("acq-1"), Key: reconcile.Found("k1")},
			{DatePair: "20210213-20210201", AcqList: reconcile.Found("acq-2"), Ifg: reconcile.Found("ifg-2"), Key: reconcile.Found("k2")},
			{DatePair: "20210105-20210101", AcqList: reconcile.Found("acq-3"), Key: reconcile.Found("k3")},
		},
		Comparison: []reconcile.ComparisonRow{
			{DatePair: "20210105-20210101", Enumeration: reconcile.EnumPaired, AcqList: reconcile.Found("acq-1")},
		},
	}

	sheets := BuildTables(result, []reconcile.DatePair{"20210105-20210101", "20210313-20210301"})
	require.Len(t, sheets, 4)

	assert.Equal(t, []any{"20210213-20210201", "acq-2", "MISSING", "ifg-2", "k2"}, sheets[0].Rows[1])
	assert.Equal(t, [][]any{{"20210213-20210201"}, {"20210105-20210101"}}, sheets[1].Rows)
	assert.Equal(t, [][]any{{"20210313-20210301"}, {"20210105-20210101"}}, sheets[2].Rows)
	assert.Equal(t, []any{"20210105-20210101", "PAIRED", "acq-1", "MISSING", "", "MISSING"}, sheets[3].Rows[0])
}
