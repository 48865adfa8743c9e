package search

import (
	"context"
	"fmt"
	"strconv"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/utils"
)

// FindAOI returns the AOI document with the given id.
func (c *Client) FindAOI(ctx context.Context, index, id string) (reconcile.Record, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []any{term("id.raw", id)},
			},
		},
	}
	hits, err := c.Search(ctx, index, query)
	if err != nil {
		return reconcile.Record{}, err
	}
	if len(hits) == 0 {
		return reconcile.Record{}, fmt.Errorf("%s in %s: %w", id, index, ErrAOINotFound)
	}
	return hits[0], nil
}

// FindProducts returns the products of kind that belong to aoi.
// An empty track searches every track.
func (c *Client) FindProducts(ctx context.Context, kind Kind, aoi reconcile.Record, track reconcile.Track) ([]reconcile.Record, error) {
	index, err := c.cfg.Indices.For(kind)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, index, ProductQuery(kind, aoi, track))
}

// ProductQuery builds the catalog query for one product kind.
//
// Audit-trail entries are linked to the AOI by id. Every other kind is matched by
// footprint and time window; the geometry test is delegated to the index.
func ProductQuery(kind Kind, aoi reconcile.Record, track reconcile.Track) map[string]any {
	if kind == KindAuditTrail {
		return map[string]any{
			"query": map[string]any{
				"bool": map[string]any{
					"must": []any{
						term("metadata.aoi.raw", aoi.SourceID()),
						term("metadata.track_number", trackValue(track)),
					},
				},
			},
		}
	}

	var filters []any
	if track != "" {
		field := "metadata.track_number"
		if kind == KindSLC {
			field = "metadata.trackNumber"
		}
		filters = append(filters, term(field, trackValue(track)))
	}
	if start, ok := aoi.SourceValue("starttime"); ok && !utils.IsEmpty(start) {
		filters = append(filters, map[string]any{"range": map[string]any{"endtime": map[string]any{"gte": start}}})
	}
	if end, ok := aoi.SourceValue("endtime"); ok && !utils.IsEmpty(end) {
		filters = append(filters, map[string]any{"range": map[string]any{"starttime": map[string]any{"lte": end}}})
	}

	boolQuery := map[string]any{}
	if location, ok := aoi.SourceValue("location"); ok && location != nil {
		boolQuery["must"] = []any{
			map[string]any{"geo_shape": map[string]any{"location": map[string]any{"shape": location}}},
		}
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	return map[string]any{"query": map[string]any{"bool": boolQuery}}
}

func term(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

// trackValue keeps numeric tracks numeric so term queries match integer mappings.
func trackValue(track reconcile.Track) any {
	if n, err := strconv.Atoi(string(track)); err == nil {
		return n
	}
	return string(track)
}
