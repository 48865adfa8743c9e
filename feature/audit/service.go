package audit

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

// Request holds the inputs of one audit report run.
type Request struct {
	AOIID    string `json:"aoi_id"`
	AOIIndex string `json:"aoi_index"`
}

// TrackResult is the outcome of one track.
type TrackResult struct {
	Track    reconcile.Track  `json:"track"`
	Summary  Summary          `json:"summary"`
	Products []ProductStatus  `json:"products"`
	Artifact *report.Artifact `json:"artifact,omitempty"`
}

// Result is the outcome of a run, tracks in ascending order.
type Result struct {
	AOIID  string        `json:"aoi_id"`
	Tracks []TrackResult `json:"tracks"`
}

// Service generates audit reports.
type Service struct {
	source    report.Source
	publisher *report.Publisher
	cfg       report.Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new audit report service.
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

// Generate builds one audit report per track of the AOI's acquisition lists.
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

	stamp := s.now().UTC()
	tracks := byTrack.Tracks()
	results := make(map[reconcile.Track]TrackResult, len(tracks))
	var mu sync.Mutex

	err = report.ForEachTrack(ctx, tracks, s.cfg.Concurrency, func(ctx context.Context, track reconcile.Track) error {
		res, err := s.runTrack(ctx, req.AOIID, aoi, track, byTrack[track], stamp)
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

	out := &Result{AOIID: req.AOIID, Tracks: make([]TrackResult, 0, len(tracks))}
	for _, track := range tracks {
		out.Tracks = append(out.Tracks, results[track])
	}
	return out, nil
}

func (s *Service) runTrack(ctx context.Context, aoiID string, aoi reconcile.Record, track reconcile.Track, acqLists []reconcile.Record, stamp time.Time) (TrackResult, error) {
	l := logger.WithTrack(s.logger, aoiID, string(track))

	data := TrackData{AcqLists: acqLists}
	g, gctx := errgroup.WithContext(ctx)
	for kind, dst := range map[search.Kind]*[]reconcile.Record{
		search.KindAcquisition: &data.Acquisitions,
		search.KindSLC:         &data.SLCs,
		search.KindIfgCfg:      &data.IfgCfgs,
		search.KindIfg:         &data.Ifgs,
		search.KindAuditTrail:  &data.AuditTrail,
	} {
		kind, dst := kind, dst
		g.Go(func() error {
			records, err := s.source.FindProducts(gctx, kind, aoi, track)
			if err != nil {
				return err
			}
			*dst = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return TrackResult{}, err
	}

	analysis := Analyze(data, l)

	product := report.Product{
		ID:      report.ProductID(report.KindAudit, aoiID, track, stamp, s.cfg.Version),
		Kind:    report.KindAudit,
		AOIID:   aoiID,
		AOI:     aoi,
		Track:   track,
		Sheets:  BuildTables(data, analysis),
		Summary: reconcile.ComparisonSummary{Total: len(analysis.DatePairs)},
	}
	artifact, err := s.publisher.Publish(ctx, product)
	if err != nil {
		return TrackResult{}, err
	}

	l.Info("Generated audit report",
		zap.String("product", product.ID),
		zap.Int("acq_lists", analysis.Summary.AcqLists),
		zap.Int("missing_slcs", analysis.Summary.MissingSLCs))
	return TrackResult{
		Track:    track,
		Summary:  analysis.Summary,
		Products: analysis.Products,
		Artifact: &artifact,
	}, nil
}
