package report

import (
	"context"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"
)

// Source is the catalog the report pipelines read from.
// search.Client implements it.
type Source interface {
	FindAOI(ctx context.Context, index, id string) (reconcile.Record, error)
	FindProducts(ctx context.Context, kind search.Kind, aoi reconcile.Record, track reconcile.Track) ([]reconcile.Record, error)
}
