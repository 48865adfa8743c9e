package cmd

import (
	"fmt"

	"enumeration-report/core/config"
	"enumeration-report/core/database"
	"enumeration-report/core/logger"
	"enumeration-report/core/search"
	"enumeration-report/core/storage"
	"enumeration-report/feature/report"

	"go.uber.org/zap"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	source    *search.Client
	publisher *report.Publisher
	ledger    *report.Ledger
	store     storage.Client
}

// newApp loads configuration and wires the catalog, the publisher and, when
// enabled, the uploader and the run ledger.
// upload and ledger force the matching report settings on. With optionalLedger
// a failing database only disables the ledger.
func newApp(upload, ledger, optionalLedger bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Report.Upload = cfg.Report.Upload || upload
	cfg.Report.Ledger = cfg.Report.Ledger || ledger

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	source, err := search.NewClient(cfg.Search, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	a := &app{cfg: cfg, logger: logg, source: source}

	var opts []report.PublisherOption
	if cfg.Report.Upload {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.store = client
		opts = append(opts, report.WithUploader(client, cfg.Storage))
	}

	if cfg.Report.Ledger {
		l, err := openLedger(cfg.Database)
		switch {
		case err == nil:
			a.ledger = l
			opts = append(opts, report.WithLedger(l))
		case optionalLedger:
			logg.Warn("Run ledger unavailable", zap.Error(err))
		default:
			return nil, err
		}
	}

	a.publisher = report.NewPublisher(cfg.Report, logg, opts...)
	return a, nil
}

func openLedger(cfg database.Config) (*report.Ledger, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("ledger database connection failed: %w", err)
	}
	ledger := report.NewLedger(db)
	if err := ledger.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return ledger, nil
}
