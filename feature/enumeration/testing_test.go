package enumeration

import (
	"context"
	"fmt"
	"sync"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"
)

// fakeSource serves canned records per kind and track.
type fakeSource struct {
	aoi      reconcile.Record
	aoiErr   error
	products map[search.Kind][]reconcile.Record
	failKind search.Kind

	mu      sync.Mutex
	queries []string
}

func (f *fakeSource) FindAOI(ctx context.Context, index, id string) (reconcile.Record, error) {
	if f.aoiErr != nil {
		return reconcile.Record{}, f.aoiErr
	}
	return f.aoi, nil
}

func (f *fakeSource) FindProducts(ctx context.Context, kind search.Kind, aoi reconcile.Record, track reconcile.Track) ([]reconcile.Record, error) {
	f.mu.Lock()
	f.queries = append(f.queries, fmt.Sprintf("%s/%s", kind, track))
	f.mu.Unlock()

	if kind == f.failKind {
		return nil, fmt.Errorf("catalog unavailable for %s", kind)
	}
	var out []reconcile.Record
	for _, r := range f.products[kind] {
		if track == "" {
			out = append(out, r)
			continue
		}
		if t, err := reconcile.ResolveTrack(r); err == nil && t == track {
			out = append(out, r)
		}
	}
	return out, nil
}

func product(id, track, scene, secondaryDate, referenceDate string, extra map[string]any) reconcile.Record {
	met := map[string]any{
		"track_number":     track,
		"reference_scenes": []any{scene + "-ref"},
		"secondary_scenes": []any{scene + "-sec"},
		"secondary_date":   secondaryDate,
		"reference_date":   referenceDate,
	}
	for k, v := range extra {
		met[k] = v
	}
	return reconcile.Record{ID: id, Source: map[string]any{"id": id, "metadata": met}}
}

func fixture() *fakeSource {
	return &fakeSource{
		aoi: reconcile.Record{ID: "AOI_1", Source: map[string]any{
			"id":        "AOI_1",
			"starttime": "2021-01-01T00:00:00",
			"endtime":   "2021-06-01T00:00:00",
		}},
		products: map[search.Kind][]reconcile.Record{
			search.KindAuditTrail: {
				product("audit-1", "42", "A", "20210101", "20210105", nil),
				product("audit-2", "42", "B", "20210201", "20210213", map[string]any{"failure_reason": "no coverage"}),
			},
			search.KindAcqList: {
				product("acq-1", "42", "A", "20210101", "20210105", nil),
				product("acq-x", "42", "X", "20210401", "20210413", nil),
				product("acq-115", "115", "C", "20210101", "20210113", nil),
			},
			search.KindIfgCfg: {
				product("cfg-1", "42", "A", "20210101", "20210105", nil),
			},
		},
	}
}
