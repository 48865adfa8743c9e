package reconcile

import (
	"sort"

	"go.uber.org/zap"
)

// Policy decides which record an identity view keeps when two records share a key.
type Policy int

const (
	// MostRecentWins keeps the record with the later creation_timestamp.
	// A record without a timestamp is never preferred.
	MostRecentWins Policy = iota
	// FirstWins keeps the record inserted first.
	FirstWins
)

// Store indexes one track's collection by identity key and by date pair.
//
// The identity view is deduplicated according to the store's Policy.
// The date pair view is last-write-wins: the comparison only needs one
// representative per pair, so later records overwrite earlier ones.
type Store struct {
	hasher     Hasher
	policy     Policy
	logger     *zap.Logger
	byKey      map[IdentityKey]Record
	byPair     map[DatePair]Record
	unhashable []Record
}

// StoreOption configures NewStore.
type StoreOption func(*Store)

// WithHasher sets the key derivation. Stores joined by key must share a hasher kind.
func WithHasher(h Hasher) StoreOption {
	return func(s *Store) { s.hasher = h }
}

// WithPolicy sets the collision policy of the identity view.
func WithPolicy(p Policy) StoreOption {
	return func(s *Store) { s.policy = p }
}

// WithLogger sets the logger used for skipped records.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore builds both views over records.
func NewStore(records []Record, opts ...StoreOption) *Store {
	s := &Store{
		hasher: DigestHasher{},
		policy: MostRecentWins,
		logger: zap.NewNop(),
		byKey:  make(map[IdentityKey]Record, len(records)),
		byPair: make(map[DatePair]Record, len(records)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, r := range records {
		s.addByKey(r)
		s.addByPair(r)
	}
	return s
}

func (s *Store) addByKey(r Record) {
	key, ok := s.hasher.Key(r)
	if !ok {
		s.logger.Warn("Record has no scene groups, excluded from identity joins", zap.String("id", r.ID))
		s.unhashable = append(s.unhashable, r)
		return
	}
	existing, exists := s.byKey[key]
	if !exists {
		s.byKey[key] = r
		return
	}
	if s.policy == MostRecentWins && newer(r, existing) {
		s.byKey[key] = r
	}
}

func (s *Store) addByPair(r Record) {
	pair, err := DatePairOf(r)
	if err != nil {
		s.logger.Warn("Record has no usable dates, excluded from date pair joins", zap.String("id", r.ID), zap.Error(err))
		return
	}
	s.byPair[pair] = r
}

// newer reports whether candidate should replace current.
func newer(candidate, current Record) bool {
	ct, ok := candidate.CreationTime()
	if !ok {
		return false
	}
	et, ok := current.CreationTime()
	if !ok {
		return true
	}
	return ct.After(et)
}

// ByKey returns the record stored under key.
func (s *Store) ByKey(key IdentityKey) (Record, bool) {
	r, ok := s.byKey[key]
	return r, ok
}

// ByPair returns the representative record of a date pair.
func (s *Store) ByPair(pair DatePair) (Record, bool) {
	r, ok := s.byPair[pair]
	return r, ok
}

// KeyOf computes the key of r with this store's hasher.
func (s *Store) KeyOf(r Record) (IdentityKey, bool) {
	return s.hasher.Key(r)
}

// Len returns the number of distinct identity keys.
func (s *Store) Len() int {
	return len(s.byKey)
}

// Unhashable returns the records that could not be keyed.
func (s *Store) Unhashable() []Record {
	return s.unhashable
}

// Keys returns the identity keys in ascending order.
func (s *Store) Keys() []IdentityKey {
	keys := make([]IdentityKey, 0, len(s.byKey))
	for k := range s.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// KeySet returns the identity keys as a set.
func (s *Store) KeySet() map[IdentityKey]struct{} {
	set := make(map[IdentityKey]struct{}, len(s.byKey))
	for k := range s.byKey {
		set[k] = struct{}{}
	}
	return set
}

// Pairs returns the date pairs in descending order.
func (s *Store) Pairs() []DatePair {
	pairs := make([]DatePair, 0, len(s.byPair))
	for p := range s.byPair {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i] > pairs[j] })
	return pairs
}

// KeysByEndTime returns the identity keys ordered by their record's end time,
// latest first. Records without an end time sort last; ties fall back to the key.
func (s *Store) KeysByEndTime() []IdentityKey {
	keys := s.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		ti, iok := s.byKey[keys[i]].EndTime()
		tj, jok := s.byKey[keys[j]].EndTime()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return keys
}

// FilterByKeys keeps the records whose key is in allowed.
// Unhashable records are dropped.
func FilterByKeys(records []Record, allowed map[IdentityKey]struct{}, hasher Hasher) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key, ok := hasher.Key(r)
		if !ok {
			continue
		}
		if _, keep := allowed[key]; keep {
			out = append(out, r)
		}
	}
	return out
}
