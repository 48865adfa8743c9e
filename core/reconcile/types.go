package reconcile

import (
	"time"

	"enumeration-report/core/utils"

	"github.com/araddon/dateparse"
)

// Missing is rendered wherever a lookup found no counterpart record.
const Missing = "MISSING"

// Unhashable marks a record whose scene groups could not be read. It is a display
// value only and is never used as a key in an identity view.
const Unhashable = "UNHASHABLE"

// Record is a raw document returned by the search index.
// The engine only reads records; it never mutates Source.
type Record struct {
	// ID is the document identifier (_id).
	ID string `json:"_id"`

	// Source is the document body (_source).
	Source map[string]any `json:"_source"`
}

// IdentityKey is the content-derived key of a product built from its scene groups.
type IdentityKey string

// DatePair is a canonical "<laterYYYYMMDD>-<earlierYYYYMMDD>" token.
// Build it with NewDatePair so ordering is always applied.
type DatePair string

// Track is an orbital pass identifier used to partition every collection.
type Track string

// EnumState tells whether a date pair was requested by the input enumeration.
type EnumState string

const (
	// EnumPaired means the date pair appears in the input enumeration.
	EnumPaired EnumState = "PAIRED"
	// EnumMissing means the date pair is absent from the input enumeration.
	EnumMissing EnumState = "MISSING"
)

// Ref is the result of looking a counterpart up in another collection.
// Found distinguishes "not found" from "found with an empty id".
type Ref struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// Found builds a Ref for a located record.
func Found(id string) Ref {
	return Ref{ID: id, Found: true}
}

// String renders the id, or Missing when nothing was found.
func (r Ref) String() string {
	if !r.Found {
		return Missing
	}
	return r.ID
}

// ComparisonRow is one line of the enumeration comparison, one per date pair.
type ComparisonRow struct {
	DatePair     DatePair  `json:"date_pair"`
	Enumeration  EnumState `json:"enumeration"`
	AcqList      Ref       `json:"acq_list"`
	AuditTrail   Ref       `json:"audit_trail"`
	AuditComment string    `json:"audit_comment"`
	Key          Ref       `json:"key"`
}

// ProductRow is one line of the current products view, one per acquisition list.
type ProductRow struct {
	DatePair DatePair `json:"date_pair"`
	AcqList  Ref      `json:"acq_list"`
	IfgCfg   Ref      `json:"ifg_cfg"`
	Ifg      Ref      `json:"ifg"`
	Key      Ref      `json:"key"`
}

// Metadata returns the nested metadata mapping, or nil when absent.
func (r Record) Metadata() map[string]any {
	met, _ := r.Source["metadata"].(map[string]any)
	return met
}

// SourceValue returns a top-level _source field.
func (r Record) SourceValue(key string) (any, bool) {
	v, ok := r.Source[key]
	return v, ok
}

// MetadataValue returns a field of the nested metadata mapping.
func (r Record) MetadataValue(key string) (any, bool) {
	met := r.Metadata()
	if met == nil {
		return nil, false
	}
	v, ok := met[key]
	return v, ok
}

// SourceID returns the _source.id field, which identifies scenes and acquisitions.
func (r Record) SourceID() string {
	v, _ := r.SourceValue("id")
	return utils.ToString(v)
}

// CreationTime parses _source.creation_timestamp.
func (r Record) CreationTime() (time.Time, bool) {
	return r.timeField("creation_timestamp")
}

// EndTime parses _source.endtime.
func (r Record) EndTime() (time.Time, bool) {
	return r.timeField("endtime")
}

func (r Record) timeField(key string) (time.Time, bool) {
	v, ok := r.SourceValue(key)
	if !ok {
		return time.Time{}, false
	}
	s := utils.ToString(v)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
