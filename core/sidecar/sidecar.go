package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"enumeration-report/core/reconcile"
	"enumeration-report/core/utils"
)

// Dataset is the <product>.dataset.json document describing a product.
type Dataset struct {
	Label     string `json:"label"`
	Version   string `json:"version"`
	StartTime any    `json:"starttime"`
	EndTime   any    `json:"endtime"`
	Location  any    `json:"location"`
}

// Met is the <product>.met.json document.
// TrackNumber is an int for numeric tracks and the raw string otherwise.
type Met struct {
	TrackNumber any `json:"track_number"`
}

// MetFor builds the met document of a track.
func MetFor(track reconcile.Track) Met {
	s := strings.TrimSpace(string(track))
	if n := utils.ToInt(s); s != "" && strconv.Itoa(n) == s {
		return Met{TrackNumber: n}
	}
	return Met{TrackNumber: string(track)}
}

// DatasetFor copies the AOI's time window and footprint into a product's dataset document.
func DatasetFor(aoi reconcile.Record, productID, version string) Dataset {
	ds := Dataset{Label: productID, Version: version}
	ds.StartTime, _ = aoi.SourceValue("starttime")
	ds.EndTime, _ = aoi.SourceValue("endtime")
	ds.Location, _ = aoi.SourceValue("location")
	return ds
}

// DatasetPath returns where the dataset document of productID lives inside dir.
func DatasetPath(dir, productID string) string {
	return filepath.Join(dir, productID+".dataset.json")
}

// MetPath returns where the met document of productID lives inside dir.
func MetPath(dir, productID string) string {
	return filepath.Join(dir, productID+".met.json")
}

// Write stores both documents of productID in dir.
func Write(dir, productID string, ds Dataset, met Met) error {
	if err := writeJSON(DatasetPath(dir, productID), ds); err != nil {
		return err
	}
	return writeJSON(MetPath(dir, productID), met)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return atomicWrite(path, data, 0o644)
}

// atomicWrite replaces path with data through a synced temporary file in the
// same directory. The directory is synced after the rename so the new name
// survives a crash.
func atomicWrite(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sidecar-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("sync dir %s: %w", dir, err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync dir %s: %w", dir, err)
	}
	return nil
}
