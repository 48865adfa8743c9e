package config

import (
	"errors"
	"fmt"
	"strings"

	"enumeration-report/core/utils"

	"github.com/spf13/viper"
)

// ErrInvalidContext is returned when the job context lacks the AOI inputs.
var ErrInvalidContext = errors.New("invalid job context")

// RunContext holds the inputs of one report job.
type RunContext struct {
	// AOIID is the id of the area of interest.
	AOIID string
	// AOIIndex is the index the AOI document lives in.
	AOIIndex string
	// DatePairs is the expected enumeration as entered by the user.
	DatePairs string
}

// LoadRunContext reads a job context file (usually _context.json).
// date_pairs may be a comma separated string or a list of strings.
func LoadRunContext(path string) (*RunContext, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	rc := &RunContext{
		AOIID:     v.GetString("aoi_id"),
		AOIIndex:  v.GetString("aoi_index"),
		DatePairs: datePairsString(v.Get("date_pairs")),
	}
	return rc, nil
}

func datePairsString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, utils.ToString(p))
		}
		return strings.Join(parts, ",")
	default:
		return utils.ToString(v)
	}
}

// Merge overrides the context with non-empty values from flags.
func (rc RunContext) Merge(aoiID, aoiIndex, datePairs string) RunContext {
	if aoiID != "" {
		rc.AOIID = aoiID
	}
	if aoiIndex != "" {
		rc.AOIIndex = aoiIndex
	}
	if datePairs != "" {
		rc.DatePairs = datePairs
	}
	return rc
}

// Validate reports whether the AOI inputs are present.
func (rc RunContext) Validate() error {
	if rc.AOIID == "" || rc.AOIIndex == "" {
		return fmt.Errorf("%w: aoi_id %q, aoi_index %q", ErrInvalidContext, rc.AOIID, rc.AOIIndex)
	}
	return nil
}
