package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"enumeration-report/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_context.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"aoi_id":"AOI_1","aoi_index":"aois","date_pairs":["20210105-20210101"]}`), 0o644))

	tests := []struct {
		name      string
		context   string
		aoiID     string
		datePairs string
		want      config.RunContext
		wantErr   error
	}{
		{"FromFile", path, "", "", config.RunContext{AOIID: "AOI_1", AOIIndex: "aois", DatePairs: "20210105-20210101"}, nil},
		{"FlagsOverride", path, "AOI_2", "20210213-20210201", config.RunContext{AOIID: "AOI_2", AOIIndex: "aois", DatePairs: "20210213-20210201"}, nil},
		{"NoInputs", "", "", "", config.RunContext{}, config.ErrInvalidContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contextFlag, aoiIDFlag, aoiIndexFlag, datePairsFlag = tt.context, tt.aoiID, "", tt.datePairs
			t.Cleanup(func() { contextFlag, aoiIDFlag, datePairsFlag = "", "", "" })

			rc, err := runContext()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rc)
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{{"report", "enumeration"}, {"report", "audit"}, {"serve"}, {"runs"}, {"runs", "verify"}} {
		found, _, err := RootCmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}
