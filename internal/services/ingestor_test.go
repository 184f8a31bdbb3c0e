package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HACKWAVE2025/B30/internal/inference"
	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/observability"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 8, 15, 30, 0, time.UTC)

type recordingSink struct {
	name    string
	err     error
	entries []models.HistoryEntry
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Publish(_ context.Context, e models.HistoryEntry) error {
	s.entries = append(s.entries, e)
	return s.err
}

type panickingStore struct{ store.DataStore }

func (panickingStore) Append(models.Reading, models.AnalysisResult) models.HistoryEntry {
	panic("disk on fire")
}

func newTestIngestor(t *testing.T, dataStore store.DataStore, sinks ...Sink) (*Ingestor, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	logger := observability.Discard()
	ing := NewIngestor(dataStore, inference.New(FaultLogger(logger, metrics)), logger, metrics, sinks...)
	ing.clock = clockwork.NewFakeClockAt(fixedNow)
	return ing, metrics
}

func TestHandlePayload_Success(t *testing.T) {
	s := store.NewStore(10, store.WithClock(clockwork.NewFakeClockAt(fixedNow)))
	sink := &recordingSink{name: "test"}
	ing, metrics := newTestIngestor(t, s, sink)

	resp := ing.HandlePayload(context.Background(), TransportHTTP,
		[]byte(`{"temp": 28, "humidity": 75, "soil_moisture": 65, "distance": 8.5, "soil_type": "Clay"}`))

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "Data received and analyzed successfully! ✅", resp.Message)
	assert.Equal(t, "2025-06-01 08:15:30", resp.Timestamp)
	assert.Equal(t, 1, resp.TotalReadings)
	require.NotNil(t, resp.ReceivedData)
	assert.Equal(t, ReceivedData{Temperature: 28, Humidity: 75, Moisture: 65, Distance: 8.5, SoilType: "Clay"}, *resp.ReceivedData)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "Rice", resp.Analysis.PredictedCrop)
	assert.Equal(t, "Naturally High", resp.Analysis.WaterStatus)
	assert.Empty(t, resp.ErrorType)

	require.Len(t, sink.entries, 1)
	assert.Equal(t, resp.ID, sink.entries[0].ID)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReadingsIngested.WithLabelValues(TransportHTTP, StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HistorySize))
}

func TestHandlePayload_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		message   string
		errorType string
	}{
		{"empty", "", "No data received", ErrorTypeEmptyBody},
		{"whitespace", "  \n", "No data received", ErrorTypeEmptyBody},
		{"not json", "temp=28", "Invalid JSON", ErrorTypeInvalidJSON},
		{"array", "[1, 2]", "Invalid JSON", ErrorTypeInvalidJSON},
		{"null", "null", "Invalid JSON", ErrorTypeInvalidJSON},
		{"empty object", "{}", "Invalid JSON", ErrorTypeInvalidJSON},
		{"trailing data", `{"temp": 20} {"temp": 21}`, "Invalid JSON", ErrorTypeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewStore(10)
			ing, metrics := newTestIngestor(t, s)

			resp := ing.HandlePayload(context.Background(), TransportMQTT, []byte(tt.body))

			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.errorType, resp.ErrorType)
			assert.Equal(t, "2025-06-01 08:15:30", resp.Timestamp)
			assert.Nil(t, resp.Analysis)
			assert.Equal(t, 0, s.Count())
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReadingsIngested.WithLabelValues(TransportMQTT, StatusError)))
		})
	}
}

func TestHandlePayload_InternalFault(t *testing.T) {
	ing, _ := newTestIngestor(t, panickingStore{store.NewStore(1)})

	resp := ing.HandlePayload(context.Background(), TransportHTTP, []byte(`{"temp": 20}`))

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, ErrorTypeInternal, resp.ErrorType)
	assert.Contains(t, resp.Message, "disk on fire")
}

func TestIngest_SinkErrorDoesNotFail(t *testing.T) {
	failing := &recordingSink{name: "kafka", err: errors.New("broker down")}
	ok := &recordingSink{name: "ws"}
	ing, metrics := newTestIngestor(t, store.NewStore(10), failing, ok)

	entry, err := ing.Ingest(context.Background(), map[string]any{"temp": 22.0})

	require.NoError(t, err)
	assert.Equal(t, uint64(1), entry.Seq)
	assert.Len(t, ok.entries, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PublishErrors.WithLabelValues("kafka")))
}

func TestIngest_AddSink(t *testing.T) {
	ing, _ := newTestIngestor(t, store.NewStore(10))
	late := &recordingSink{name: "late"}
	ing.AddSink(late)

	_, err := ing.Ingest(context.Background(), map[string]any{"humidity": 40.0})
	require.NoError(t, err)
	assert.Len(t, late.entries, 1)
}

func TestIngest_TotalCapsAtCapacity(t *testing.T) {
	ing, _ := newTestIngestor(t, store.NewStore(3))

	var resp DeviceResponse
	for i := 0; i < 5; i++ {
		resp = ing.HandlePayload(context.Background(), TransportHTTP, []byte(`{"temp": 20}`))
	}
	assert.Equal(t, 3, resp.TotalReadings)
}

func TestFaultLogger_CountsStep(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	FaultLogger(observability.Discard(), metrics)(inference.StepWater, "boom")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EngineFaults.WithLabelValues(inference.StepWater)))
}
