package reconcile

import (
	"errors"
	"fmt"
	"time"

	"enumeration-report/core/utils"

	"github.com/araddon/dateparse"
)

// ErrNoDates is returned when a record carries neither date metadata nor start/end times.
var ErrNoDates = errors.New("no dates available for date pair")

// ErrBareNumber is returned for an all-digit date that is not YYYYMMDD.
var ErrBareNumber = errors.New("numeric date must have 8 digits")

const datePairLayout = "20060102"

// dateSource names a pair of fields that can supply the two dates of a pair.
type dateSource struct {
	first, second string
	lookup        func(r Record, key string) (any, bool)
}

// datePairFields is tried in order; the first source with at least one value wins.
var datePairFields = []dateSource{
	{first: "secondary_date", second: "reference_date", lookup: Record.MetadataValue},
	{first: "starttime", second: "endtime", lookup: Record.SourceValue},
}

// NewDatePair canonicalizes two dates so that the later one comes first.
func NewDatePair(a, b time.Time) DatePair {
	if a.Before(b) {
		a, b = b, a
	}
	return DatePair(a.Format(datePairLayout) + "-" + b.Format(datePairLayout))
}

// DatePairOf derives the canonical date pair of a record.
// When only one of the two dates is present it is used for both positions.
func DatePairOf(r Record) (DatePair, error) {
	for _, src := range datePairFields {
		first := lookupString(r, src.first, src.lookup)
		second := lookupString(r, src.second, src.lookup)
		if first == "" && second == "" {
			continue
		}
		if first == "" {
			first = second
		}
		if second == "" {
			second = first
		}
		a, err := parseDate(first)
		if err != nil {
			return "", fmt.Errorf("record %s: %w", r.ID, err)
		}
		b, err := parseDate(second)
		if err != nil {
			return "", fmt.Errorf("record %s: %w", r.ID, err)
		}
		return NewDatePair(a, b), nil
	}
	return "", fmt.Errorf("record %s: %w", r.ID, ErrNoDates)
}

func lookupString(r Record, key string, lookup func(Record, string) (any, bool)) string {
	v, ok := lookup(r, key)
	if !ok || utils.IsEmpty(v) {
		return ""
	}
	return utils.ToString(v)
}

// parseDate parses loosely formatted dates; values without a zone are read as UTC.
// A bare number must be a YYYYMMDD date; other digit runs would parse as epoch times.
func parseDate(s string) (time.Time, error) {
	if isDigits(s) && len(s) != len(datePairLayout) {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, ErrBareNumber)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
