package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the AquaSense field backend
type Config struct {
	Server  ServerConfig
	History HistoryConfig
	Log     LogConfig
	MQTT    MQTTConfig
	Kafka   KafkaConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// HistoryConfig sizes the in-memory reading history
type HistoryConfig struct {
	Capacity    int
	RecentLimit int
}

// LogConfig selects the slog level and handler
type LogConfig struct {
	Level  string
	Format string
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled           bool
	BrokerURL         string
	ClientID          string
	Username          string
	Password          string
	KeepAlive         time.Duration
	PingTimeout       time.Duration
	ConnectRetries    int
	TopicSensorData   string
	TopicSensorDevice string
	TopicAnalysis     string
}

// KafkaConfig holds the optional event sink configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxBodyBytes:    int64(getIntEnv("MAX_BODY_BYTES", 1<<20)),
		},
		History: HistoryConfig{
			Capacity:    getIntEnv("HISTORY_CAPACITY", 100),
			RecentLimit: getIntEnv("RECENT_LIMIT", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MQTT: MQTTConfig{
			BrokerURL:         getMQTTBrokerURL(),
			ClientID:          getEnv("MQTT_CLIENT_ID", "aquasense_backend"),
			Username:          getEnv("MQTT_USERNAME", ""),
			Password:          getEnv("MQTT_PASSWORD", ""),
			KeepAlive:         getDurationEnv("MQTT_KEEP_ALIVE", 30*time.Second),
			PingTimeout:       getDurationEnv("MQTT_PING_TIMEOUT", 10*time.Second),
			ConnectRetries:    getIntEnv("MQTT_CONNECT_RETRIES", 5),
			TopicSensorData:   getEnv("MQTT_TOPIC_SENSOR_DATA", "aquasense/sensors/data"),
			TopicSensorDevice: getEnv("MQTT_TOPIC_SENSOR_DEVICE", "aquasense/sensors/+/data"),
			TopicAnalysis:     getEnv("MQTT_TOPIC_ANALYSIS", "aquasense/analysis"),
		},
		Kafka: KafkaConfig{
			Brokers: parseBrokers(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "aquasense-readings"),
		},
	}
	cfg.MQTT.Enabled = getBoolEnv("MQTT_ENABLED", cfg.MQTT.BrokerURL != "")
	cfg.Kafka.Enabled = getBoolEnv("KAFKA_ENABLED", len(cfg.Kafka.Brokers) > 0)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", c.History.Capacity)
	}
	if c.History.RecentLimit <= 0 || c.History.RecentLimit > c.History.Capacity {
		return fmt.Errorf("RECENT_LIMIT must be between 1 and %d, got %d", c.History.Capacity, c.History.RecentLimit)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	if c.MQTT.Enabled && c.MQTT.BrokerURL == "" {
		return fmt.Errorf("MQTT_ENABLED requires MQTT_BROKER")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_ENABLED requires KAFKA_BROKERS")
	}
	return nil
}

// Addr returns the HTTP listen address
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// getEnv returns environment variable value or default if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv returns duration environment variable value or default if not set
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getBoolEnv returns boolean environment variable value or default if not set
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getIntEnv returns integer environment variable value or default if not set
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getMQTTBrokerURL returns the broker URL with a tcp:// scheme when none is given.
// Empty means MQTT ingestion is off.
func getMQTTBrokerURL() string {
	broker := strings.TrimSpace(getEnv("MQTT_BROKER", os.Getenv("MQTT_BROKER_URL")))
	if broker == "" || strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
