package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/HACKWAVE2025/B30/config"
	"github.com/HACKWAVE2025/B30/internal/dashboard"
	httphandlers "github.com/HACKWAVE2025/B30/internal/http"
	"github.com/HACKWAVE2025/B30/internal/inference"
	"github.com/HACKWAVE2025/B30/internal/mqtt"
	"github.com/HACKWAVE2025/B30/internal/observability"
	"github.com/HACKWAVE2025/B30/internal/publish"
	"github.com/HACKWAVE2025/B30/internal/services"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/HACKWAVE2025/B30/internal/ws"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside development.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file loaded", "error", envErr)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()

	dataStore := store.NewStore(cfg.History.Capacity)
	engine := inference.New(services.FaultLogger(logger, metrics))
	logger.Info("history store ready", "capacity", cfg.History.Capacity)

	wsHub := ws.NewHub(logger, metrics)
	go wsHub.Run(ctx)

	ingestor := services.NewIngestor(dataStore, engine, logger, metrics, wsHub)

	if cfg.Kafka.Enabled {
		kafkaWriter := publish.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, metrics)
		defer func() {
			if err := kafkaWriter.Close(); err != nil {
				logger.Warn("kafka writer close failed", "error", err)
			}
		}()
		ingestor.AddSink(kafkaWriter)
		logger.Info("kafka publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	if cfg.MQTT.Enabled {
		mqttClient := mqtt.NewClient(mqtt.Config{
			BrokerURL:      cfg.MQTT.BrokerURL,
			ClientID:       cfg.MQTT.ClientID,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			KeepAlive:      cfg.MQTT.KeepAlive,
			PingTimeout:    cfg.MQTT.PingTimeout,
			ConnectRetries: cfg.MQTT.ConnectRetries,
			SensorTopics:   []string{cfg.MQTT.TopicSensorData, cfg.MQTT.TopicSensorDevice},
			AnalysisTopic:  cfg.MQTT.TopicAnalysis,
		}, ingestor, logger, metrics)

		// HTTP ingestion keeps working when the broker is unreachable.
		if err := mqttClient.Connect(ctx); err != nil {
			logger.Warn("continuing without MQTT", "error", err)
		} else {
			defer mqttClient.Disconnect()
		}
	} else {
		logger.Info("MQTT broker not configured, skipping MQTT ingestion")
	}

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		return err
	}

	handlers := httphandlers.NewHandlers(dataStore, ingestor, renderer, logger, httphandlers.Options{
		RecentLimit:  cfg.History.RecentLimit,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	srv := httphandlers.NewServer(cfg.Server.Addr(), httphandlers.SetupRoutes(handlers, wsHub),
		cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited", "readings_total", dataStore.Total())
	return nil
}
