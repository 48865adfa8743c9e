package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"enumeration-report/core/reconcile"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// catalog serves total documents, honoring from/size, with hits.total in the given style.
func catalog(t *testing.T, total int, objectTotal bool, requests *int32, bodies *[]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		if bodies != nil {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			*bodies = append(*bodies, body)
		}

		from, _ := strconv.Atoi(r.URL.Query().Get("from"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		hits := []map[string]any{}
		for i := from; i < total && i < from+size; i++ {
			id := fmt.Sprintf("doc-%d", i)
			hits = append(hits, map[string]any{"_id": id, "_source": map[string]any{"id": id}})
		}

		var totalField any = total
		if objectTotal {
			totalField = map[string]any{"value": total, "relation": "eq"}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{"total": totalField, "hits": hits},
		})
	}))
}

func newTestClient(t *testing.T, url string, pageSize int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		Addresses:      []string{url},
		PageSize:       pageSize,
		TimeoutSeconds: 5,
		Breaker:        BreakerConfig{MaxFailures: 2, OpenSeconds: 60},
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestSearch_Paginates(t *testing.T) {
	tests := []struct {
		name        string
		objectTotal bool
	}{
		{"NumericTotal", false},
		{"ObjectTotal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int32
			srv := catalog(t, 7, tt.objectTotal, &requests, nil)
			defer srv.Close()

			c := newTestClient(t, srv.URL, 3)
			records, err := c.Search(context.Background(), "grq_*_s1-gunw", map[string]any{"query": map[string]any{"match_all": map[string]any{}}})
			require.NoError(t, err)

			require.Len(t, records, 7)
			assert.Equal(t, "doc-0", records[0].ID)
			assert.Equal(t, "doc-6", records[6].SourceID())
			assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
		})
	}
}

func TestFindAOI(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		var requests int32
		var bodies []map[string]any
		srv := catalog(t, 1, true, &requests, &bodies)
		defer srv.Close()

		aoi, err := newTestClient(t, srv.URL, 10).FindAOI(context.Background(), "grq_v1_area_of_interest", "AOI_1")
		require.NoError(t, err)
		assert.Equal(t, "doc-0", aoi.ID)

		require.Len(t, bodies, 1)
		encoded, _ := json.Marshal(bodies[0])
		assert.Contains(t, string(encoded), `"id.raw":"AOI_1"`)
	})

	t.Run("NotFound", func(t *testing.T) {
		var requests int32
		srv := catalog(t, 0, true, &requests, nil)
		defer srv.Close()

		_, err := newTestClient(t, srv.URL, 10).FindAOI(context.Background(), "aois", "AOI_missing")
		assert.ErrorIs(t, err, ErrAOINotFound)
	})
}

func TestSearch_BreakerOpens(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	for i := 0; i < 2; i++ {
		_, err := c.Search(context.Background(), "idx", map[string]any{})
		require.Error(t, err)
	}

	_, err := c.Search(context.Background(), "idx", map[string]any{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestParseTotal(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `12`, want: 12},
		{raw: `{"value": 40, "relation": "eq"}`, want: 40},
		{raw: `null`, want: 0},
		{raw: `"many"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseTotal(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndices_For(t *testing.T) {
	idx := DefaultIndices()

	got, err := idx.For(KindAuditTrail)
	require.NoError(t, err)
	assert.Equal(t, "grq_*_s1-gunw-acqlist-audit_trail", got)

	_, err = idx.For(Kind("blacklist"))
	assert.Error(t, err)

	_, err = Indices{}.For(KindIfg)
	assert.Error(t, err)
}

func TestProductQuery(t *testing.T) {
	aoi := reconcile.Record{ID: "AOI_1", Source: map[string]any{
		"id":        "AOI_1",
		"starttime": "2021-01-01T00:00:00",
		"endtime":   "2021-06-01T00:00:00",
		"location":  map[string]any{"type": "Polygon", "coordinates": []any{}},
	}}

	encode := func(q map[string]any) string {
		b, err := json.Marshal(q)
		require.NoError(t, err)
		return string(b)
	}

	audit := encode(ProductQuery(KindAuditTrail, aoi, "42"))
	assert.Contains(t, audit, `"metadata.aoi.raw":"AOI_1"`)
	assert.Contains(t, audit, `"metadata.track_number":42`)
	assert.NotContains(t, audit, "geo_shape")

	slc := encode(ProductQuery(KindSLC, aoi, "42"))
	assert.Contains(t, slc, `"metadata.trackNumber":42`)
	assert.Contains(t, slc, `"geo_shape"`)
	assert.Contains(t, slc, `"endtime":{"gte":"2021-01-01T00:00:00"}`)
	assert.Contains(t, slc, `"starttime":{"lte":"2021-06-01T00:00:00"}`)

	allTracks := encode(ProductQuery(KindAcqList, aoi, ""))
	assert.NotContains(t, allTracks, "track_number")
}
