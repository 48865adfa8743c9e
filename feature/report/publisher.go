package report

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"enumeration-report/core/sidecar"
	"enumeration-report/core/storage"
	"enumeration-report/core/workbook"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Publisher writes products to disk and, when configured, uploads and records them.
type Publisher struct {
	cfg      Config
	logger   *zap.Logger
	store    storage.Client
	storeCfg storage.Config
	ledger   *Ledger

	mu       sync.Mutex
	inflight map[string]*productLock
}

// productLock serializes publishes of one product id.
type productLock struct {
	sync.Mutex
	refs int
}

// PublisherOption configures NewPublisher.
type PublisherOption func(*Publisher)

// WithUploader publishes products to object storage.
func WithUploader(client storage.Client, cfg storage.Config) PublisherOption {
	return func(p *Publisher) {
		p.store = client
		p.storeCfg = cfg
	}
}

// WithLedger records every product in the run ledger.
func WithLedger(l *Ledger) PublisherOption {
	return func(p *Publisher) { p.ledger = l }
}

// NewPublisher creates a publisher writing under cfg.OutputDir.
func NewPublisher(cfg Config, logger *zap.Logger, opts ...PublisherOption) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{cfg: cfg, logger: logger, inflight: make(map[string]*productLock)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish writes the product directory (workbook plus sidecars), replacing any
// previous directory of the same name. A track produces all of its files or none.
// Publishes of the same product id run one at a time; the last one wins.
func (p *Publisher) Publish(ctx context.Context, product Product) (Artifact, error) {
	unlock := p.lockProduct(product.ID)
	defer unlock()

	dir := filepath.Join(p.cfg.OutputDir, product.ID)
	artifact := Artifact{ProductID: product.ID, Track: string(product.Track), Dir: dir}

	if err := os.RemoveAll(dir); err != nil {
		return artifact, fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return artifact, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	files, err := p.writeFiles(dir, product)
	if err != nil {
		_ = os.RemoveAll(dir)
		return artifact, err
	}
	artifact.Files = files

	if p.store != nil {
		keys, err := p.upload(ctx, product.ID, files)
		if err != nil {
			return artifact, err
		}
		artifact.ObjectKeys = keys
	}

	if p.ledger != nil {
		run := runFor(product, artifact)
		if err := p.ledger.Record(ctx, run); err != nil {
			return artifact, err
		}
		artifact.RunID = run.ID
	}

	p.logger.Info("Published product",
		zap.String("product", product.ID),
		zap.String("track", string(product.Track)),
		zap.Int("rows", product.Rows()),
		zap.Int("uploaded", len(artifact.ObjectKeys)))
	return artifact, nil
}

// lockProduct blocks until no other publish of id is running.
func (p *Publisher) lockProduct(id string) func() {
	p.mu.Lock()
	l, ok := p.inflight[id]
	if !ok {
		l = &productLock{}
		p.inflight[id] = l
	}
	l.refs++
	p.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.inflight, id)
		}
		p.mu.Unlock()
	}
}

func (p *Publisher) writeFiles(dir string, product Product) ([]string, error) {
	xlsx := filepath.Join(dir, product.ID+".xlsx")
	if err := workbook.SaveAs(xlsx, product.Sheets); err != nil {
		return nil, err
	}

	ds := sidecar.DatasetFor(product.AOI, product.ID, p.cfg.Version)
	if err := sidecar.Write(dir, product.ID, ds, sidecar.MetFor(product.Track)); err != nil {
		return nil, err
	}
	return []string{xlsx, sidecar.DatasetPath(dir, product.ID), sidecar.MetPath(dir, product.ID)}, nil
}

func (p *Publisher) upload(ctx context.Context, productID string, files []string) ([]string, error) {
	bucket := p.storeCfg.Bucket
	prefix := path.Join(p.storeCfg.Prefix, productID) + "/"

	if err := storage.EnsureBucket(ctx, p.store, bucket, p.storeCfg.Region); err != nil {
		return nil, err
	}
	if err := storage.RemovePrefix(ctx, p.store, bucket, prefix); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		key := prefix + filepath.Base(file)
		contentType := "application/json"
		if filepath.Ext(file) == ".xlsx" {
			contentType = xlsxContentType
		}
		if _, err := storage.UploadFile(ctx, p.store, bucket, key, file, contentType); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func runFor(product Product, artifact Artifact) *ReportRun {
	location := artifact.Dir
	if len(artifact.ObjectKeys) > 0 {
		location = path.Dir(artifact.ObjectKeys[0])
	}
	return &ReportRun{
		ProductID:         product.ID,
		Kind:              product.Kind,
		AOI:               product.AOIID,
		Track:             string(product.Track),
		Location:          location,
		Uploaded:          len(artifact.ObjectKeys) > 0,
		Rows:              product.Rows(),
		Paired:            product.Summary.Paired,
		NotEnumerated:     product.Summary.NotEnumerated,
		MissingAcqList:    product.Summary.MissingAcqList,
		MissingAuditTrail: product.Summary.MissingAuditTrail,
		Failed:            product.Summary.Failed,
	}
}
