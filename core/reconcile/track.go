package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"enumeration-report/core/utils"
)

// ErrTrackNotFound is returned when no track field resolves for a record.
var ErrTrackNotFound = errors.New("track not found")

// trackFields lists the track field spellings seen across product types, in priority order.
// They are checked at the top level of _source first, then inside _source.metadata.
var trackFields = []string{"track_number", "track", "trackNumber", "track_Number"}

// TrackNotFoundError identifies the record whose track could not be resolved.
type TrackNotFoundError struct {
	RecordID string
}

func (e *TrackNotFoundError) Error() string {
	return fmt.Sprintf("unable to find track for: %s", e.RecordID)
}

func (e *TrackNotFoundError) Unwrap() error {
	return ErrTrackNotFound
}

// ResolveTrack returns the track of a record.
func ResolveTrack(r Record) (Track, error) {
	lookups := []func(string) (any, bool){r.SourceValue, r.MetadataValue}
	for _, lookup := range lookups {
		for _, field := range trackFields {
			v, ok := lookup(field)
			if !ok || utils.IsEmpty(v) {
				continue
			}
			return Track(utils.ToString(v)), nil
		}
	}
	return "", &TrackNotFoundError{RecordID: r.ID}
}

// Partitioned holds records grouped by track.
type Partitioned map[Track][]Record

// Partition groups records by track, preserving input order inside each track.
// A single unresolvable record fails the whole partitioning.
func Partition(records []Record) (Partitioned, error) {
	out := make(Partitioned)
	for _, r := range records {
		track, err := ResolveTrack(r)
		if err != nil {
			return nil, err
		}
		out[track] = append(out[track], r)
	}
	return out, nil
}

// Tracks returns the partition keys, numeric tracks first in numeric order.
func (p Partitioned) Tracks() []Track {
	tracks := make([]Track, 0, len(p))
	for t := range p {
		tracks = append(tracks, t)
	}
	sort.Slice(tracks, func(i, j int) bool {
		return lessTrack(tracks[i], tracks[j])
	})
	return tracks
}

func lessTrack(a, b Track) bool {
	ai, aErr := strconv.Atoi(string(a))
	bi, bErr := strconv.Atoi(string(b))
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
