package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"enumeration-report/core/reconcile"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrAOINotFound is returned when the AOI id matches no document.
var ErrAOINotFound = errors.New("aoi not found")

// Client queries the product catalog.
// Every page request runs through a circuit breaker; failures are never retried.
type Client struct {
	es      *elasticsearch.Client
	breaker *gobreaker.CircuitBreaker
	cfg     Config
	logger  *zap.Logger
}

// NewClient creates a catalog client. It does not contact the cluster.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 1000
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 60
	}
	if cfg.Indices == (Indices{}) {
		cfg.Indices = DefaultIndices()
	}
	if cfg.Breaker.MaxFailures == 0 {
		cfg.Breaker.MaxFailures = 5
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "catalog-search",
		Timeout: time.Duration(cfg.Breaker.OpenSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{es: es, breaker: breaker, cfg: cfg, logger: logger}, nil
}

type page struct {
	total int
	hits  []reconcile.Record
}

// Search runs query against index and returns every hit, paging with from/size
// until the reported total is reached.
func (c *Client) Search(ctx context.Context, index string, query map[string]any) ([]reconcile.Record, error) {
	first, err := c.page(ctx, index, query, 0)
	if err != nil {
		return nil, err
	}

	records := first.hits
	for from := c.cfg.PageSize; from < first.total; from += c.cfg.PageSize {
		next, err := c.page(ctx, index, query, from)
		if err != nil {
			return nil, err
		}
		if len(next.hits) == 0 {
			break
		}
		records = append(records, next.hits...)
	}

	c.logger.Debug("Search completed",
		zap.String("index", index),
		zap.Int("total", first.total),
		zap.Int("fetched", len(records)))
	return records, nil
}

func (c *Client) page(ctx context.Context, index string, query map[string]any, from int) (page, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(query); err != nil {
			return nil, fmt.Errorf("failed to encode query: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
		defer cancel()

		size := c.cfg.PageSize
		req := esapi.SearchRequest{
			Index: []string{index},
			Body:  &buf,
			From:  &from,
			Size:  &size,
		}

		res, err := req.Do(ctx, c.es)
		if err != nil {
			return nil, fmt.Errorf("search request failed: %w", err)
		}
		defer res.Body.Close()

		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			return nil, fmt.Errorf("search failed with status %s: %s", res.Status(), string(body))
		}

		var response struct {
			Hits struct {
				Total json.RawMessage    `json:"total"`
				Hits  []reconcile.Record `json:"hits"`
			} `json:"hits"`
		}
		if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
			return nil, fmt.Errorf("failed to parse search response: %w", err)
		}

		total, err := parseTotal(response.Hits.Total)
		if err != nil {
			return nil, err
		}
		return page{total: total, hits: response.Hits.Hits}, nil
	})
	if err != nil {
		return page{}, fmt.Errorf("search %s from %d: %w", index, from, err)
	}
	return result.(page), nil
}

// parseTotal accepts both the legacy numeric total and the {"value": n} object.
func parseTotal(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var obj struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0, fmt.Errorf("unexpected hits.total %s: %w", string(raw), err)
	}
	return obj.Value, nil
}
