package audit

import (
	"sort"

	"enumeration-report/core/reconcile"

	"go.uber.org/zap"
)

// TrackData holds one track's collections as returned by the catalog.
type TrackData struct {
	Acquisitions []reconcile.Record
	SLCs         []reconcile.Record
	AcqLists     []reconcile.Record
	IfgCfgs      []reconcile.Record
	Ifgs         []reconcile.Record
	AuditTrail   []reconcile.Record
}

// ProductStatus is the production state of one acquisition list.
type ProductStatus struct {
	AcqList     string   `json:"acq_list"`
	Localized   bool     `json:"localized"`
	IfgCfg      bool     `json:"ifg_cfg"`
	Ifg         bool     `json:"ifg"`
	MissingSLCs []string `json:"missing_slcs,omitempty"`
	MissingAcqs []string `json:"missing_acquisitions,omitempty"`
}

// Summary counts acquisition lists by how far they got through the pipeline.
type Summary struct {
	AcqLists    int `json:"acq_lists"`
	Localized   int `json:"localized"`
	IfgCfgs     int `json:"ifg_cfgs"`
	Ifgs        int `json:"ifgs"`
	MissingSLCs int `json:"missing_slcs"`
	Unhashable  int `json:"unhashable"`
}

// Analysis is the audit of one track.
type Analysis struct {
	Products    []ProductStatus
	MissingSLCs []string
	DatePairs   []reconcile.DatePair
	Summary     Summary

	acquisitions map[string]reconcile.Record
	sceneToAcq   map[string]string
}

// Analyze audits every acquisition list of a track: whether its scenes are
// localized and whether its ifg-cfg and ifg exist.
//
// Acquisition lists and ifg-cfgs reference acquisitions, ifgs reference scenes,
// so the first two are keyed after translating acquisition ids to scene ids.
func Analyze(data TrackData, log *zap.Logger) Analysis {
	if log == nil {
		log = zap.NewNop()
	}
	acqToScene, sceneToAcq := reconcile.SceneMapping(data.Acquisitions)
	slcs := reconcile.IndexByID(data.SLCs)

	// Catalog collections keep the first record of a key; only the enumeration
	// path resolves collisions by creation time.
	converted := reconcile.PairHasher{Conversion: acqToScene}
	firstWins := reconcile.WithPolicy(reconcile.FirstWins)
	acqLists := reconcile.NewStore(data.AcqLists, reconcile.WithHasher(converted), firstWins, reconcile.WithLogger(log))
	ifgCfgs := reconcile.NewStore(data.IfgCfgs, reconcile.WithHasher(converted), firstWins, reconcile.WithLogger(log))
	ifgs := reconcile.NewStore(data.Ifgs, reconcile.WithHasher(reconcile.PairHasher{}), firstWins, reconcile.WithLogger(log))

	a := Analysis{
		DatePairs:    acqLists.Pairs(),
		acquisitions: reconcile.IndexByID(data.Acquisitions),
		sceneToAcq:   sceneToAcq,
	}
	a.Summary.Unhashable = len(acqLists.Unhashable()) + len(ifgCfgs.Unhashable()) + len(ifgs.Unhashable())
	if a.Summary.Unhashable > 0 {
		log.Warn("Products without scene groups left out of the audit", zap.Int("unhashable", a.Summary.Unhashable))
	}

	allMissing := make(map[string]struct{})
	for _, key := range acqLists.Keys() {
		rec, _ := acqLists.ByKey(key)
		status := ProductStatus{
			AcqList:   rec.SourceID(),
			Localized: reconcile.IsCovered(rec, slcs, acqToScene),
		}
		_, status.IfgCfg = ifgCfgs.ByKey(key)
		_, status.Ifg = ifgs.ByKey(key)

		if !status.Localized {
			for _, id := range reconcile.MissingIDs(rec, slcs, acqToScene) {
				if id == reconcile.Missing {
					continue
				}
				status.MissingSLCs = append(status.MissingSLCs, id)
				allMissing[id] = struct{}{}
			}
			for _, acqID := range reconcile.SceneIDs(rec, nil) {
				scene := acqToScene[acqID]
				if _, ok := slcs[scene]; scene == "" || !ok {
					status.MissingAcqs = append(status.MissingAcqs, acqID)
				}
			}
		}

		a.Products = append(a.Products, status)
		a.Summary.count(status)
	}

	for id := range allMissing {
		a.MissingSLCs = append(a.MissingSLCs, id)
	}
	sort.Strings(a.MissingSLCs)
	a.Summary.MissingSLCs = len(a.MissingSLCs)
	return a
}

func (s *Summary) count(p ProductStatus) {
	s.AcqLists++
	if p.Localized {
		s.Localized++
	}
	if p.IfgCfg {
		s.IfgCfgs++
	}
	if p.Ifg {
		s.Ifgs++
	}
}

// AcquisitionOf returns the acquisition that produced a scene.
func (a Analysis) AcquisitionOf(sceneID string) (reconcile.Record, bool) {
	r, ok := a.acquisitions[a.sceneToAcq[sceneID]]
	return r, ok
}
