package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRun is one published product in the run ledger.
type ReportRun struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID         string    `gorm:"size:255;index" json:"product_id"`
	Kind              string    `gorm:"size:64" json:"kind"`
	AOI               string    `gorm:"size:255;index" json:"aoi"`
	Track             string    `gorm:"size:32" json:"track"`
	Location          string    `gorm:"size:1024" json:"location"`
	Uploaded          bool      `json:"uploaded"`
	Rows              int       `json:"rows"`
	Paired            int       `json:"paired"`
	NotEnumerated     int       `json:"not_enumerated"`
	MissingAcqList    int       `json:"missing_acq_list"`
	MissingAuditTrail int       `json:"missing_audit_trail"`
	Failed            int       `json:"failed"`
	CreatedAt         time.Time `json:"created_at"`
}

// Ledger records emitted products. It is never read by the reconciliation engine.
type Ledger struct {
	db *gorm.DB
}

// NewLedger wraps an open database connection.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Migrate creates or updates the ledger table.
func (l *Ledger) Migrate() error {
	return l.db.AutoMigrate(&ReportRun{})
}

// Record stores run, assigning an id when it has none.
func (l *Ledger) Record(ctx context.Context, run *ReportRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := l.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ProductID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first, optionally restricted to one AOI.
func (l *Ledger) Recent(ctx context.Context, aoi string, limit int) ([]ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	q := l.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if aoi != "" {
		q = q.Where("aoi = ?", aoi)
	}
	var runs []ReportRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
