package report

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"enumeration-report/core/storage"

	"github.com/minio/minio-go/v7"
)

// productFiles are the suffixes of the files every product carries.
var productFiles = []string{".xlsx", ".dataset.json", ".met.json"}

// Verification lists the objects an uploaded run is missing.
type Verification struct {
	RunID     string   `json:"run_id"`
	ProductID string   `json:"product_id"`
	Location  string   `json:"location"`
	Missing   []string `json:"missing"`
}

// VerifyUploads checks that every uploaded run still has all of its objects in
// the bucket. Runs that were only written to disk are ignored. Only incomplete
// runs are returned.
func VerifyUploads(ctx context.Context, client storage.Client, bucket string, runs []ReportRun) ([]Verification, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var out []Verification
	for _, run := range runs {
		if !run.Uploaded {
			continue
		}

		prefix := strings.TrimSuffix(run.Location, "/") + "/"
		present := make(map[string]struct{})
		var listErr error
		for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				listErr = errors.Join(listErr, obj.Err)
				continue
			}
			present[path.Base(obj.Key)] = struct{}{}
		}
		if listErr != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, listErr)
		}

		v := Verification{RunID: run.ID, ProductID: run.ProductID, Location: run.Location}
		for _, suffix := range productFiles {
			name := run.ProductID + suffix
			if _, ok := present[name]; !ok {
				v.Missing = append(v.Missing, name)
			}
		}
		if len(v.Missing) > 0 {
			out = append(out, v)
		}
	}
	return out, nil
}
