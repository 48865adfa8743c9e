package enumeration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"enumeration-report/core/logger"
	"enumeration-report/core/reconcile"
	"enumeration-report/core/search"
	"enumeration-report/feature/report"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request holds the inputs of one enumeration report run.
type Request struct {
	AOIID     string `json:"aoi_id"`
	AOIIndex  string `json:"aoi_index"`
	DatePairs string `json:"date_pairs"`
}

// TrackResult is the outcome of one track.
type TrackResult struct {
	Track    reconcile.Track             `json:"track"`
	Skipped  bool                        `json:"skipped"`
	Summary  reconcile.ComparisonSummary `json:"summary"`
	Artifact *report.Artifact            `json:"artifact,omitempty"`
}

// Result is the outcome of a run, tracks in ascending order.
type Result struct {
	AOIID       string               `json:"aoi_id"`
	Enumeration []reconcile.DatePair `json:"enumeration"`
	Tracks      []TrackResult        `json:"tracks"`
}

// Service generates enumeration comparison reports.
type Service struct {
	source    report.Source
	publisher *report.Publisher
	cfg       report.Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new enumeration report service.
func NewService(source report.Source, publisher *report.Publisher, cfg report.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to stamp product names.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate builds one report per track of the AOI's acquisition lists.
// Tracks without audit-trail entries are skipped.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	aoi, err := s.source.FindAOI(ctx, req.AOIIndex, req.AOIID)
	if err != nil {
		return nil, err
	}

	acqLists, err := s.source.FindProducts(ctx, search.KindAcqList, aoi, "")
	if err != nil {
		return nil, err
	}
	byTrack, err := reconcile.Partition(acqLists)
	if err != nil {
		return nil, err
	}

	enumeration := reconcile.NormalizeEnumeration(req.DatePairs, s.logger)
	stamp := s.now().UTC()

	tracks := byTrack.Tracks()
	results := make(map[reconcile.Track]TrackResult, len(tracks))
	var mu sync.Mutex

	err = report.ForEachTrack(ctx, tracks, s.cfg.Concurrency, func(ctx context.Context, track reconcile.Track) error {
		res, err := s.runTrack(ctx, req.AOIID, aoi, track, enumeration, stamp)
		if err != nil {
			return fmt.Errorf("track %s: %w", track, err)
		}
		mu.Lock()
		results[track] = res
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &Result{AOIID: req.AOIID, Enumeration: enumeration, Tracks: make([]TrackResult, 0, len(tracks))}
	for _, track := range tracks {
		out.Tracks = append(out.Tracks, results[track])
	}
	return out, nil
}

func (s *Service) runTrack(ctx context.Context, aoiID string, aoi reconcile.Record, track reconcile.Track, enumeration []reconcile.DatePair, stamp time.Time) (TrackResult, error) {
	l := logger.WithTrack(s.logger, aoiID, string(track))

	auditTrail, err := s.source.FindProducts(ctx, search.KindAuditTrail, aoi, track)
	if err != nil {
		return TrackResult{}, err
	}
	if len(auditTrail) == 0 {
		l.Info("No audit trail products found, skipping track")
		return TrackResult{Track: track, Skipped: true}, nil
	}

	audit := reconcile.NewStore(auditTrail, reconcile.WithLogger(l))
	allowed := audit.KeySet()

	// Only products whose key appears in the audit trail are reconciled.
	var acqLists, ifgCfgs, ifgs []reconcile.Record
	g, gctx := errgroup.WithContext(ctx)
	for kind, dst := range map[search.Kind]*[]reconcile.Record{
		search.KindAcqList: &acqLists,
		search.KindIfgCfg:  &ifgCfgs,
		search.KindIfg:     &ifgs,
	} {
		kind, dst := kind, dst
		g.Go(func() error {
			records, err := s.source.FindProducts(gctx, kind, aoi, track)
			if err != nil {
				return err
			}
			*dst = reconcile.FilterByKeys(records, allowed, reconcile.DigestHasher{})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TrackResult{}, err
	}

	in := reconcile.CompareInput{
		AcqLists:    reconcile.NewStore(acqLists, reconcile.WithLogger(l)),
		IfgCfgs:     reconcile.NewStore(ifgCfgs, reconcile.WithLogger(l)),
		Ifgs:        reconcile.NewStore(ifgs, reconcile.WithLogger(l)),
		AuditTrail:  audit,
		Enumeration: enumeration,
	}
	if n := len(audit.Unhashable()); n > 0 {
		l.Warn("Audit trail entries without scene groups, their products are not reconciled", zap.Int("unhashable", n))
	}
	result := reconcile.Reconcile(in)

	product := report.Product{
		ID:      report.ProductID(report.KindEnumeration, aoiID, track, stamp, s.cfg.Version),
		Kind:    report.KindEnumeration,
		AOIID:   aoiID,
		AOI:     aoi,
		Track:   track,
		Sheets:  BuildTables(result, enumeration),
		Summary: result.Summary,
	}
	artifact, err := s.publisher.Publish(ctx, product)
	if err != nil {
		return TrackResult{}, err
	}

	l.Info("Generated enumeration report",
		zap.String("product", product.ID),
		zap.Int("date_pairs", result.Summary.Total),
		zap.Int("missing_acq_lists", result.Summary.MissingAcqList))
	return TrackResult{Track: track, Summary: result.Summary, Artifact: &artifact}, nil
}
