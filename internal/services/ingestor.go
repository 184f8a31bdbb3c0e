package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HACKWAVE2025/B30/internal/inference"
	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/observability"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/jonboulle/clockwork"
)

// Transports label where a payload came from.
const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
)

// Sink receives every stored entry, e.g. the live feed or an event topic.
// Publish must not block on network I/O.
type Sink interface {
	Name() string
	Publish(ctx context.Context, entry models.HistoryEntry) error
}

// Ingestor turns device payloads into analyzed history entries.
type Ingestor struct {
	store   store.DataStore
	engine  *inference.Engine
	parser  *SensorParser
	sinks   []Sink
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewIngestor wires the ingestion pipeline.
func NewIngestor(dataStore store.DataStore, engine *inference.Engine, logger *slog.Logger, metrics *observability.Metrics, sinks ...Sink) *Ingestor {
	return &Ingestor{
		store:   dataStore,
		engine:  engine,
		parser:  NewSensorParser(),
		sinks:   sinks,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
		metrics: metrics,
	}
}

// AddSink registers another sink. It must be called before ingestion starts.
func (i *Ingestor) AddSink(s Sink) {
	i.sinks = append(i.sinks, s)
}

// HandlePayload parses, analyzes and stores a raw payload and returns the
// response the device should receive.
func (i *Ingestor) HandlePayload(ctx context.Context, transport string, body []byte) DeviceResponse {
	payload, err := i.parser.ParsePayload(body)
	if err != nil {
		i.metrics.ReadingsIngested.WithLabelValues(transport, StatusError).Inc()
		i.logger.Warn("rejected sensor payload", "transport", transport, "error", err, "bytes", len(body))
		return NewErrorResponse(err, i.clock.Now())
	}

	entry, err := i.Ingest(ctx, payload)
	if err != nil {
		i.metrics.ReadingsIngested.WithLabelValues(transport, StatusError).Inc()
		i.logger.Error("sensor payload failed", "transport", transport, "error", err)
		return NewErrorResponse(err, i.clock.Now())
	}

	i.metrics.ReadingsIngested.WithLabelValues(transport, StatusSuccess).Inc()
	i.logger.Info("reading analyzed",
		"transport", transport,
		"seq", entry.Seq,
		"temperature", entry.Temperature,
		"moisture", entry.Moisture,
		"distance", entry.Distance,
		"crop", entry.Analysis.PredictedCrop,
		"confidence", entry.Analysis.Confidence,
		"water_status", entry.Analysis.WaterStatus,
	)
	return NewSuccessResponse(entry, i.store.Count())
}

// Ingest normalizes and analyzes a decoded payload, stores the entry and hands
// it to every sink. Sink failures are logged and counted only.
func (i *Ingestor) Ingest(ctx context.Context, payload map[string]any) (entry models.HistoryEntry, err error) {
	defer func() {
		if cause := recover(); cause != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, cause)
		}
	}()

	reading := models.Normalize(payload)
	analysis := i.engine.Analyze(reading)
	entry = i.store.Append(reading, analysis)
	i.metrics.HistorySize.Set(float64(i.store.Count()))

	for _, s := range i.sinks {
		if perr := s.Publish(ctx, entry); perr != nil {
			i.metrics.PublishErrors.WithLabelValues(s.Name()).Inc()
			i.logger.Warn("sink rejected entry", "sink", s.Name(), "seq", entry.Seq, "error", perr)
		}
	}
	return entry, nil
}

// FaultLogger returns an inference.FaultFunc that logs and counts rule
// failures.
func FaultLogger(logger *slog.Logger, metrics *observability.Metrics) inference.FaultFunc {
	return func(step string, cause any) {
		metrics.EngineFaults.WithLabelValues(step).Inc()
		logger.Error("inference step failed, using fallback", "step", step, "cause", fmt.Sprint(cause))
	}
}
