package search

import "fmt"

// Kind names a product collection in the catalog.
type Kind string

const (
	KindAcqList     Kind = "acq-list"
	KindIfgCfg      Kind = "ifg-cfg"
	KindIfg         Kind = "ifg"
	KindAuditTrail  Kind = "audit-trail"
	KindSLC         Kind = "slc"
	KindAcquisition Kind = "acquisition"
)

// Config holds configuration for the catalog search client.
type Config struct {
	// Addresses lists the Elasticsearch nodes (comma separated in env).
	Addresses []string `mapstructure:"addresses" default:"http://localhost:9200"`
	// Username for basic authentication.
	Username string `mapstructure:"username" default:""`
	// Password for basic authentication.
	Password string `mapstructure:"password" default:""`
	// PageSize is the number of hits fetched per request.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// TimeoutSeconds bounds every page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// Indices maps each product kind to its index pattern.
	Indices Indices `mapstructure:"indices"`
	// Breaker configures the circuit breaker around the cluster.
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// Indices holds the index pattern of every product kind.
type Indices struct {
	AcqList     string `mapstructure:"acq_list" default:"grq_*_s1-gunw-acq-list"`
	IfgCfg      string `mapstructure:"ifg_cfg" default:"grq_*_s1-gunw-ifg-cfg"`
	Ifg         string `mapstructure:"ifg" default:"grq_*_s1-gunw"`
	AuditTrail  string `mapstructure:"audit_trail" default:"grq_*_s1-gunw-acqlist-audit_trail"`
	SLC         string `mapstructure:"slc" default:"grq_*_s1-iw_slc"`
	Acquisition string `mapstructure:"acquisition" default:"grq_*_acquisition-s1-iw_slc"`
}

// DefaultIndices returns the catalog's standard index patterns.
func DefaultIndices() Indices {
	return Indices{
		AcqList:     "grq_*_s1-gunw-acq-list",
		IfgCfg:      "grq_*_s1-gunw-ifg-cfg",
		Ifg:         "grq_*_s1-gunw",
		AuditTrail:  "grq_*_s1-gunw-acqlist-audit_trail",
		SLC:         "grq_*_s1-iw_slc",
		Acquisition: "grq_*_acquisition-s1-iw_slc",
	}
}

// For returns the index pattern of kind.
func (i Indices) For(kind Kind) (string, error) {
	var index string
	switch kind {
	case KindAcqList:
		index = i.AcqList
	case KindIfgCfg:
		index = i.IfgCfg
	case KindIfg:
		index = i.Ifg
	case KindAuditTrail:
		index = i.AuditTrail
	case KindSLC:
		index = i.SLC
	case KindAcquisition:
		index = i.Acquisition
	default:
		return "", fmt.Errorf("unknown product kind %q", kind)
	}
	if index == "" {
		return "", fmt.Errorf("no index configured for %s", kind)
	}
	return index, nil
}

// BreakerConfig holds the circuit breaker thresholds.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32 `mapstructure:"max_failures" default:"5"`
	// OpenSeconds is how long the breaker stays open before probing again.
	OpenSeconds int `mapstructure:"open_seconds" default:"30"`
}
