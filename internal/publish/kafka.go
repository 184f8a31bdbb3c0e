// Package publish forwards analyzed entries to external event streams.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaWriter produces one message per history entry.
// It implements services.Sink.
type KafkaWriter struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaWriter creates an asynchronous producer for topic. Delivery errors
// are reported through the completion callback, so Publish never waits on the
// broker.
func NewKafkaWriter(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *KafkaWriter {
	kw := &KafkaWriter{logger: logger}
	kw.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(msgs []kafkago.Message, err error) {
			if err == nil {
				return
			}
			metrics.PublishErrors.WithLabelValues(kw.Name()).Add(float64(len(msgs)))
			logger.Warn("kafka delivery failed", "topic", topic, "messages", len(msgs), "error", err)
		},
	}
	return kw
}

// Name identifies the writer as an ingestion sink.
func (w *KafkaWriter) Name() string {
	return "kafka"
}

// Publish queues the entry for delivery.
func (w *KafkaWriter) Publish(ctx context.Context, entry models.HistoryEntry) error {
	msg, err := serializeEntry(entry)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages.
func (w *KafkaWriter) Close() error {
	return w.writer.Close()
}

// serializeEntry marshals a HistoryEntry into a Kafka message keyed by entry ID.
func serializeEntry(entry models.HistoryEntry) (kafkago.Message, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize history entry: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(entry.ID),
		Value: data,
		Time:  entry.Timestamp,
		Headers: []kafkago.Header{
			{Key: "seq", Value: []byte(strconv.FormatUint(entry.Seq, 10))},
			{Key: "predicted_crop", Value: []byte(entry.Analysis.PredictedCrop)},
			{Key: "water_status", Value: []byte(entry.Analysis.WaterStatus)},
			{Key: "recorded_at", Value: []byte(entry.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
