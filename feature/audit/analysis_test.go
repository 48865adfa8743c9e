package audit

import (
	"testing"

	"enumeration-report/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOf(t *testing.T, a Analysis, id string) ProductStatus {
	t.Helper()
	for _, p := range a.Products {
		if p.AcqList == id {
			return p
		}
	}
	require.Failf(t, "missing product", "no status for %s", id)
	return ProductStatus{}
}

func TestAnalyze(t *testing.T) {
	a := Analyze(trackData(), nil)

	tests := []struct {
		id   string
		want ProductStatus
	}{
		{"list-1", ProductStatus{AcqList: "list-1", Localized: true, IfgCfg: true, Ifg: true}},
		{"list-2", ProductStatus{AcqList: "list-2", MissingSLCs: []string{"slc-c"}, MissingAcqs: []string{"acq-c"}}},
		{"list-3", ProductStatus{AcqList: "list-3", MissingAcqs: []string{"acq-z"}}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(t, a, tt.id))
		})
	}

	assert.Equal(t, Summary{AcqLists: 3, Localized: 1, IfgCfgs: 1, Ifgs: 1, MissingSLCs: 1}, a.Summary)
	assert.Equal(t, []string{"slc-c"}, a.MissingSLCs)
	assert.Equal(t, []reconcile.DatePair{"20210125-20210101", "20210113-20210101"}, a.DatePairs)
}

func TestAnalyze_CollisionKeepsFirst(t *testing.T) {
	data := trackData()
	data.AcqLists = []reconcile.Record{
		paired("list-first", ids("acq-a"), ids("acq-b"), map[string]any{"creation_timestamp": "2021-01-01T00:00:00"}),
		paired("list-later", ids("acq-a"), ids("acq-b"), map[string]any{"creation_timestamp": "2021-06-01T00:00:00"}),
	}
	data.IfgCfgs = []reconcile.Record{
		paired("cfg-first", ids("acq-a"), ids("acq-b"), map[string]any{"creation_timestamp": "2021-01-01T00:00:00"}),
		paired("cfg-later", ids("acq-a"), ids("acq-b"), map[string]any{"creation_timestamp": "2021-06-01T00:00:00"}),
	}

	a := Analyze(data, nil)

	require.Len(t, a.Products, 1)
	assert.Equal(t, "list-first", a.Products[0].AcqList)
	assert.True(t, a.Products[0].IfgCfg)
	assert.Equal(t, 1, a.Summary.AcqLists)
}

func TestAnalyze_CountsUnhashable(t *testing.T) {
	data := trackData()
	data.Ifgs = append(data.Ifgs, record("ifg-bare", nil, nil))

	a := Analyze(data, nil)

	assert.Equal(t, 1, a.Summary.Unhashable)
	assert.Equal(t, 3, a.Summary.AcqLists)
	assert.Equal(t, 1, a.Summary.Ifgs)
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(TrackData{}, nil)

	assert.Empty(t, a.Products)
	assert.Empty(t, a.MissingSLCs)
	assert.Equal(t, Summary{}, a.Summary)
}

func TestAnalysis_AcquisitionOf(t *testing.T) {
	a := Analyze(trackData(), nil)

	acq, ok := a.AcquisitionOf("slc-c")
	require.True(t, ok)
	assert.Equal(t, "acq-c", acq.SourceID())

	_, ok = a.AcquisitionOf("slc-unknown")
	assert.False(t, ok)
}
