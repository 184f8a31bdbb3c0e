package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/HACKWAVE2025/B30/internal/observability"
	"github.com/HACKWAVE2025/B30/internal/services"
	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	sensorQoS   byte = 1
	analysisQoS byte = 0

	publishTimeout = 5 * time.Second
)

// PayloadHandler processes a raw device payload. *services.Ingestor
// implements it.
type PayloadHandler interface {
	HandlePayload(ctx context.Context, transport string, body []byte) services.DeviceResponse
}

// publisher is the part of mqtt.Client used to send analysis results.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Config holds MQTT connection configuration
type Config struct {
	BrokerURL      string
	ClientID       string
	Username       string
	Password       string
	KeepAlive      time.Duration
	PingTimeout    time.Duration
	ConnectRetries int
	SensorTopics   []string
	AnalysisTopic  string
}

// DefaultConfig returns default MQTT configuration
func DefaultConfig() Config {
	return Config{
		BrokerURL:      "tcp://localhost:1883",
		ClientID:       "aquasense_backend",
		KeepAlive:      30 * time.Second,
		PingTimeout:    10 * time.Second,
		ConnectRetries: 5,
		SensorTopics:   []string{"aquasense/sensors/data", "aquasense/sensors/+/data"},
		AnalysisTopic:  "aquasense/analysis",
	}
}

// Client feeds sensor messages from the broker into the ingestion pipeline
// and publishes each analysis back.
type Client struct {
	client    mqtt.Client
	publisher publisher
	handler   PayloadHandler
	config    Config
	connected atomic.Bool
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewClient creates a new MQTT client for field sensor ingestion
func NewClient(config Config, handler PayloadHandler, logger *slog.Logger, metrics *observability.Metrics) *Client {
	c := &Client{
		handler: handler,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetPingTimeout(config.PingTimeout)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)

	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}

	// Subscriptions are made on every (re)connect since the session is clean.
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(c.onConnectionLost)

	c.client = mqtt.NewClient(opts)
	c.publisher = c.client
	return c
}

// Connect establishes the broker connection, retrying with exponential
// backoff up to ConnectRetries attempts or until ctx is done.
func (c *Client) Connect(ctx context.Context) error {
	retries := c.config.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries-1)), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		token := c.client.Connect()
		if token.Wait() && token.Error() != nil {
			c.logger.Warn("mqtt connect failed", "broker", c.config.BrokerURL, "attempt", attempt, "error", token.Error())
			return token.Error()
		}
		return nil
	}, policy)
	if err != nil {
		return fmt.Errorf("connect to MQTT broker %s after %d attempts: %w", c.config.BrokerURL, attempt, err)
	}
	return nil
}

// Disconnect closes the MQTT connection
func (c *Client) Disconnect() {
	if c.connected.Swap(false) {
		c.metrics.MQTTConnected.Set(0)
	}
	if c.client.IsConnected() {
		c.client.Disconnect(250)
		c.logger.Info("disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status
func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.client.IsConnected()
}

// subscribe registers the sensor handler on every configured topic.
func (c *Client) subscribe(client mqtt.Client) error {
	for _, topic := range c.config.SensorTopics {
		if token := client.Subscribe(topic, sensorQoS, c.sensorDataHandler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("subscribe to topic %s: %w", topic, token.Error())
		}
		c.logger.Info("subscribed to MQTT topic", "topic", topic)
	}
	return nil
}

func (c *Client) onConnect(client mqtt.Client) {
	c.connected.Store(true)
	c.metrics.MQTTConnected.Set(1)
	c.logger.Info("connected to MQTT broker", "broker", c.config.BrokerURL)

	if err := c.subscribe(client); err != nil {
		c.logger.Error("mqtt subscription failed", "error", err)
	}
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	c.connected.Store(false)
	c.metrics.MQTTConnected.Set(0)
	c.logger.Warn("MQTT connection lost", "error", err)
}

// sensorDataHandler runs on paho's goroutine for every sensor message.
func (c *Client) sensorDataHandler(_ mqtt.Client, msg mqtt.Message) {
	c.logger.Debug("sensor message received", "topic", msg.Topic(), "bytes", len(msg.Payload()))

	resp := c.handler.HandlePayload(context.Background(), services.TransportMQTT, msg.Payload())
	if err := c.publishResponse(resp); err != nil {
		c.logger.Warn("publish analysis failed", "topic", c.config.AnalysisTopic, "error", err)
	}
}

func (c *Client) publishResponse(resp services.DeviceResponse) error {
	if c.config.AnalysisTopic == "" {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal analysis response: %w", err)
	}

	token := c.publisher.Publish(c.config.AnalysisTopic, analysisQoS, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", c.config.AnalysisTopic)
	}
	return token.Error()
}
