package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// ParseDatePair parses one enumeration token such as "20210105-20210101"
// (or with "_" as the separator) into its canonical form.
func ParseDatePair(token string) (DatePair, error) {
	dates := strings.Split(strings.ReplaceAll(token, "_", "-"), "-")
	if len(dates) != 2 {
		return "", fmt.Errorf("date pair %q must contain exactly two dates", token)
	}
	a, err := parseDate(dates[0])
	if err != nil {
		return "", err
	}
	b, err := parseDate(dates[1])
	if err != nil {
		return "", err
	}
	return NewDatePair(a, b), nil
}

// NormalizeEnumeration turns a human-entered, comma-separated list of date pairs
// into a sorted, deduplicated list of canonical pairs.
// Malformed tokens are logged and dropped; they never fail the run.
func NormalizeEnumeration(input string, log *zap.Logger) []DatePair {
	if log == nil {
		log = zap.NewNop()
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	seen := make(map[DatePair]struct{})
	for _, token := range strings.Split(cleaned, ",") {
		if token == "" {
			continue
		}
		pair, err := ParseDatePair(token)
		if err != nil {
			log.Warn("Skipping malformed date pair", zap.String("token", token), zap.Error(err))
			continue
		}
		seen[pair] = struct{}{}
	}

	pairs := make([]DatePair, 0, len(seen))
	for pair := range seen {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i] < pairs[j] })
	return pairs
}
