// Package search is the product catalog client.
//
// It wraps the Elasticsearch v8 client behind a circuit breaker and exposes the
// three lookups a report run needs: a generic paginated Search, FindAOI and
// FindProducts. Hits are returned as reconcile.Record values so they can be fed
// straight into the reconciliation engine.
//
// Requests are never retried. When the cluster keeps failing the breaker opens
// and subsequent calls fail fast with gobreaker.ErrOpenState until it recovers.
package search
