package enumeration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"enumeration-report/core/search"
	"enumeration-report/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, source *fakeSource) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t, source)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/reports/enumeration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestHandleGenerate(t *testing.T) {
	app := setupTestApp(t, fixture())

	status, body := post(t, app, `{"aoi_id":"AOI_1","aoi_index":"aois","date_pairs":"20210105-20210101"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "AOI_1", body["aoi_id"])
	assert.Len(t, body["tracks"], 2)
}

func TestHandleGenerate_Errors(t *testing.T) {
	missing := fixture()
	missing.aoiErr = search.ErrAOINotFound

	tests := []struct {
		name   string
		source *fakeSource
		body   string
		want   int
	}{
		{"MissingAOI", fixture(), `{"aoi_index":"aois"}`, fiber.StatusBadRequest},
		{"BadJSON", fixture(), `{`, fiber.StatusBadRequest},
		{"AOINotFound", missing, `{"aoi_id":"AOI_x","aoi_index":"aois"}`, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, setupTestApp(t, tt.source), tt.body)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestLoader(t *testing.T) {
	feature := NewFeature(fixture(), report.NewPublisher(report.Config{}, nil), report.Config{}, zap.NewNop())

	assert.Equal(t, "enumeration", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
