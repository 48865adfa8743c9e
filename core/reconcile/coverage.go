package reconcile

import (
	"sort"

	"enumeration-report/core/utils"
)

// Dataset types that carry a scene id.
const (
	datasetAcquisition = "acquisition-S1-IW_SLC"
	datasetSLC         = "S1-IW_SLC"
)

// IndexByID indexes records by their _source.id. Later records overwrite earlier ones.
func IndexByID(records []Record) map[string]Record {
	out := make(map[string]Record, len(records))
	for _, r := range records {
		out[r.SourceID()] = r
	}
	return out
}

// SceneMapping builds the acquisition-id to scene-id map and its inverse.
// Acquisitions without a resolvable scene id are left out.
func SceneMapping(acquisitions []Record) (acqToScene, sceneToAcq map[string]string) {
	acqToScene = make(map[string]string, len(acquisitions))
	sceneToAcq = make(map[string]string, len(acquisitions))
	for _, acq := range acquisitions {
		acqID := acq.SourceID()
		sceneID, ok := SceneIDOf(acq)
		if acqID == "" || !ok {
			continue
		}
		acqToScene[acqID] = sceneID
		sceneToAcq[sceneID] = acqID
	}
	return acqToScene, sceneToAcq
}

// SceneIDOf returns the scene id a record stands for. An acquisition names it in
// metadata.dataset and a scene is its own id. Records of any other dataset type
// have none; an untyped record is read as an acquisition.
func SceneIDOf(r Record) (string, bool) {
	kind, _ := r.SourceValue("dataset")
	switch utils.ToString(kind) {
	case datasetSLC:
		id := r.SourceID()
		return id, id != ""
	case datasetAcquisition, "":
		v, ok := r.MetadataValue("dataset")
		if !ok || utils.IsEmpty(v) {
			return "", false
		}
		return utils.ToString(v), true
	default:
		return "", false
	}
}

// SceneIDs returns the sorted, deduplicated union of both scene groups.
// With a conversion map each id is translated first; untranslatable ids become Missing.
func SceneIDs(r Record, conversion map[string]string) []string {
	reference, secondary, ok := SceneGroups(r)
	if !ok {
		reference, _ = sceneGroup(r, referenceSceneFields)
		secondary, _ = sceneGroup(r, secondarySceneFields)
	}

	set := make(map[string]struct{}, len(reference)+len(secondary))
	for _, id := range append(reference, secondary...) {
		if conversion != nil {
			mapped, found := conversion[id]
			if !found || mapped == "" {
				mapped = Missing
			}
			id = mapped
		}
		set[id] = struct{}{}
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MissingIDs returns the scene ids referenced by r that have no entry in index.
func MissingIDs(r Record, index map[string]Record, conversion map[string]string) []string {
	var missing []string
	for _, id := range SceneIDs(r, conversion) {
		if _, ok := index[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// IsCovered reports whether every scene id referenced by r is present in index.
func IsCovered(r Record, index map[string]Record, conversion map[string]string) bool {
	return len(MissingIDs(r, index, conversion)) == 0
}
