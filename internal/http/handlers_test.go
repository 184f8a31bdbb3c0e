package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/HACKWAVE2025/B30/internal/dashboard"
	"github.com/HACKWAVE2025/B30/internal/inference"
	"github.com/HACKWAVE2025/B30/internal/observability"
	"github.com/HACKWAVE2025/B30/internal/services"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testNow = time.Date(2025, 4, 3, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	store  *store.Store
	server *Server
}

func newTestAPI(t *testing.T, capacity int) *testAPI {
	t.Helper()
	logger := observability.Discard()
	metrics := observability.NewMetricsForTesting()

	s := store.NewStore(capacity, store.WithClock(clockwork.NewFakeClockAt(testNow)))
	ingestor := services.NewIngestor(s, inference.New(services.FaultLogger(logger, metrics)), logger, metrics)
	renderer, err := dashboard.NewRenderer()
	require.NoError(t, err)

	handlers := NewHandlers(s, ingestor, renderer, logger, Options{RecentLimit: 10, MaxBodyBytes: 1024})
	handlers.now = func() time.Time { return testNow }

	return &testAPI{
		store:  s,
		server: NewServer(":0", SetupRoutes(handlers, nil), time.Second, time.Second, logger),
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestIngestSensorData_Success(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodPost, "/data", `{"temp": 28, "humidity": 75, "soil_moisture": 65, "distance": 8.5, "soil_type": "Clay"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "2025-04-03 12:00:00", body["timestamp"])
	assert.Equal(t, float64(1), body["total_readings"])

	received := body["received_data"].(map[string]any)
	assert.Equal(t, 8.5, received["distance"])
	assert.Equal(t, "Clay", received["soil_type"])

	analysis := body["analysis"].(map[string]any)
	assert.Equal(t, "Rice", analysis["predicted_crop"])
	assert.Equal(t, "95%", analysis["confidence"])
	assert.Equal(t, "Naturally High", analysis["water_status"])
	assert.Equal(t, "No irrigation - natural water available", analysis["irrigation_needed"])
	assert.Equal(t, "Shallow (8.5cm) - High water table", analysis["water_table_estimate"])
	assert.Equal(t, "shallow", analysis["water_table_level"])
	assert.Equal(t, "Use gypsum and mix organic matter for better aeration.", analysis["fertilizer_recommendation"])
}

func TestIngestSensorData_MissingDistance(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodPost, "/data", `{"temp": 27.2, "humidity": 58, "soil_moisture": 0, "soil_type": "Sandy"}`)
	body := decode[services.DeviceResponse](t, rec)

	require.NotNil(t, body.Analysis)
	assert.Equal(t, "Bajra", body.Analysis.PredictedCrop)
	assert.Equal(t, "Unknown depth - sensor not available", body.Analysis.WaterTableEstimate)
	assert.Equal(t, 0.1, body.ReceivedData.Moisture)
	assert.Equal(t, -1.0, body.ReceivedData.Distance)
}

func TestIngestSensorData_ErrorsStay200(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		errorType string
		message   string
	}{
		{"empty body", "", services.ErrorTypeEmptyBody, "No data received"},
		{"not json", "hello", services.ErrorTypeInvalidJSON, "Invalid JSON"},
		{"too large", `{"soil_type": "` + strings.Repeat("x", 2048) + `"}`, services.ErrorTypeInvalidJSON, "Invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, 100)
			rec := api.do(t, http.MethodPost, "/data", tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decode[services.DeviceResponse](t, rec)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.errorType, body.ErrorType)
			assert.Equal(t, tt.message, body.Message)
			assert.NotEmpty(t, body.Timestamp)
			assert.Equal(t, 0, api.store.Count())
		})
	}
}

func TestGetLogs(t *testing.T) {
	api := newTestAPI(t, 100)
	for i := 0; i < 12; i++ {
		api.do(t, http.MethodPost, "/data", `{"temp": 22}`)
	}

	rec := api.do(t, http.MethodGet, "/logs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	logs := decode[LogsResponse](t, rec)
	assert.Equal(t, 12, logs.TotalReadings)
	assert.Len(t, logs.LatestReadings, 10)
	assert.Len(t, logs.AllReadings, 12)
	assert.Equal(t, uint64(3), logs.LatestReadings[0].Seq)
	assert.Equal(t, "Balanced NPK fertilizer recommended.", logs.AllReadings[0].Analysis.FertilizerAdvice)
	assert.Equal(t, "Loamy", logs.AllReadings[0].SoilType)
}

func TestGetLogs_RawPayloadKept(t *testing.T) {
	api := newTestAPI(t, 100)
	api.do(t, http.MethodPost, "/data", `{"temp": 22, "device": "esp-07"}`)

	rec := api.do(t, http.MethodGet, "/logs", "")
	assert.Contains(t, rec.Body.String(), `"device":"esp-07"`)
}

func TestGetHistory(t *testing.T) {
	api := newTestAPI(t, 20)
	for i := 0; i < 15; i++ {
		api.do(t, http.MethodPost, "/data", `{"temp": 30}`)
	}

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", http.StatusOK, 10},
		{"?limit=3", http.StatusOK, 3},
		{"?limit=20", http.StatusOK, 15},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=21", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, "/api/v1/history"+tt.query, "")
			require.Equal(t, tt.status, rec.Code)

			resp := decode[struct {
				Success bool              `json:"success"`
				Data    []json.RawMessage `json:"data"`
				Error   string            `json:"error"`
			}](t, rec)
			assert.Equal(t, tt.status == http.StatusOK, resp.Success)
			assert.Len(t, resp.Data, tt.count)
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestDashboardRoutes(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Waiting for device data")

	api.do(t, http.MethodPost, "/data", `{"temp": 32, "humidity": 40, "soil_moisture": 25, "distance": 45, "soil_type": "Sandy"}`)

	rec = api.do(t, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), "Pearl Millet/Bajra")

	rec = api.do(t, http.MethodGet, "/api/v1/dashboard", "")
	resp := decode[struct {
		Success bool           `json:"success"`
		Data    dashboard.View `json:"data"`
	}](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.TotalReadings)
	require.NotNil(t, resp.Data.Latest)
	assert.Equal(t, "Bajra", resp.Data.Latest.Analysis.PredictedCrop)
	assert.Equal(t, "deep", string(resp.Data.Latest.Analysis.WaterTableLevel))
}

func TestCropRoutes(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodGet, "/api/v1/crops", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Groundnut")

	rec = api.do(t, http.MethodGet, "/api/v1/crops/wheat", "")
	assert.Contains(t, rec.Body.String(), "Triticum aestivum")

	rec = api.do(t, http.MethodGet, "/api/v1/crops/Jute", "")
	assert.Contains(t, rec.Body.String(), "Specific details not available")
}

func TestExportRoutes(t *testing.T) {
	api := newTestAPI(t, 100)
	api.do(t, http.MethodPost, "/data", `{"temp": 22, "humidity": 50, "soil_moisture": 50}`)
	api.do(t, http.MethodPost, "/data", `{"temp": 28, "humidity": 75, "soil_moisture": 65, "distance": 8.5, "soil_type": "Clay"}`)

	rec := api.do(t, http.MethodGet, "/api/v1/export/history.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "aquasense_history_20250403_120000.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Wheat", records[1][8])
	assert.Equal(t, "Rice", records[2][8])

	rec = api.do(t, http.MethodGet, "/api/v1/export/history.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	crop, _ := book.GetCellValue("Analysis", "C3")
	assert.Equal(t, "Rice", crop)
}

func TestTestEndpoint(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodGet, "/test", "")
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Test GET successful! ✅", body["message"])
	assert.Equal(t, "2025-04-03 12:00:00", body["timestamp"])

	rec = api.do(t, http.MethodPost, "/test", `{"ping": 1}`)
	body = decode[map[string]any](t, rec)
	assert.Equal(t, "Test POST successful! ✅", body["message"])
	assert.Equal(t, map[string]any{"ping": float64(1)}, body["received"])

	rec = api.do(t, http.MethodPost, "/test", "")
	body = decode[map[string]any](t, rec)
	assert.Equal(t, map[string]any{}, body["received"])

	rec = api.do(t, http.MethodPost, "/test", "{oops")
	assert.Equal(t, http.StatusOK, rec.Code)
	body = decode[map[string]any](t, rec)
	assert.Equal(t, "Test POST failed ❌", body["message"])
	assert.NotEmpty(t, body["error"])

	assert.Equal(t, 0, api.store.Count())
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, 100)

	rec := api.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = api.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebSocketRouteOptional(t *testing.T) {
	api := newTestAPI(t, 100)
	rec := api.do(t, http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
