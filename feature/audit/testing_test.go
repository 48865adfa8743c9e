package audit

import (
	"context"
	"fmt"
	"sync"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"
)

// fakeSource serves canned records per kind, filtered by track.
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

func record(id string, source map[string]any, metadata map[string]any) reconcile.Record {
	src := map[string]any{"id": id}
	for k, v := range source {
		src[k] = v
	}
	met := map[string]any{"track_number": "42"}
	for k, v := range metadata {
		met[k] = v
	}
	src["metadata"] = met
	return reconcile.Record{ID: id, Source: src}
}

func acquisition(id, scene, start, end string) reconcile.Record {
	return record(id, map[string]any{"dataset": "acquisition-S1-IW_SLC", "starttime": start, "endtime": end}, map[string]any{"dataset": scene})
}

func slc(id string) reconcile.Record {
	return record(id, map[string]any{"starttime": "2021-01-01T00:00:00", "endtime": "2021-01-01T00:00:30"}, nil)
}

func paired(id string, reference, secondary []any, source map[string]any) reconcile.Record {
	return record(id, source, map[string]any{"reference_scenes": reference, "secondary_scenes": secondary})
}

func ids(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// trackData describes one track:
//
//	list-1: fully produced
//	list-2: scene of acq-c not localized, nothing generated
//	list-3: acq-z has no acquisition record
func trackData() TrackData {
	return TrackData{
		Acquisitions: []reconcile.Record{
			acquisition("acq-a", "slc-a", "2021-01-01T00:00:00", "2021-01-01T00:00:30"),
			acquisition("acq-b", "slc-b", "2021-01-13T00:00:00", "2021-01-13T00:00:30"),
			acquisition("acq-c", "slc-c", "2021-01-25T00:00:00", "2021-01-25T00:00:30"),
		},
		SLCs: []reconcile.Record{slc("slc-a"), slc("slc-b")},
		AcqLists: []reconcile.Record{
			paired("list-1", ids("acq-a"), ids("acq-b"), map[string]any{"starttime": "2021-01-01T00:00:00", "endtime": "2021-01-13T00:00:30"}),
			paired("list-2", ids("acq-c"), ids("acq-a"), map[string]any{"starttime": "2021-01-01T00:00:00", "endtime": "2021-01-25T00:00:30"}),
			paired("list-3", ids("acq-z"), ids("acq-a"), nil),
		},
		IfgCfgs: []reconcile.Record{paired("cfg-1", ids("acq-a"), ids("acq-b"), nil)},
		Ifgs:    []reconcile.Record{paired("ifg-1", ids("slc-a"), ids("slc-b"), nil)},
		AuditTrail: []reconcile.Record{
			record("audit-1", nil, map[string]any{
				"aoi":           "AOI_1",
				"union_geojson": map[string]any{"type": "Polygon"},
				"context":       map[string]any{"job": "x"},
				"scenes":        ids("acq-a", "acq-b"),
			}),
			record("audit-2", nil, map[string]any{"aoi": "AOI_1", "failure_reason": "no coverage"}),
		},
	}
}

func fixture() *fakeSource {
	data := trackData()
	return &fakeSource{
		aoi: reconcile.Record{ID: "AOI_1", Source: map[string]any{"id": "AOI_1"}},
		products: map[search.Kind][]reconcile.Record{
			search.KindAcquisition: data.Acquisitions,
			search.KindSLC:         data.SLCs,
			search.KindAcqList:     data.AcqLists,
			search.KindIfgCfg:      data.IfgCfgs,
			search.KindIfg:         data.Ifgs,
			search.KindAuditTrail:  data.AuditTrail,
		},
	}
}
