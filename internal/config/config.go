// internal/config/config.go

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Remote      RemoteConfig
	Map         MapConfig
	Engine      EngineConfig
	I18n        I18nConfig
	NATS        NATSConfig
	Database    DatabaseConfig
}

// DatabaseConfig holds Postgres configuration for the storemock backend
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// RemoteConfig holds remote ticket store configuration
type RemoteConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// MapConfig holds camera-framing defaults
type MapConfig struct {
	DefaultLat    float64
	DefaultLng    float64
	DefaultZoom   int
	FocusZoom     int
	FlyToZoom     int
	BoundsPad     float64
	DensityWeight float64
}

// EngineConfig holds derived-view engine configuration
type EngineConfig struct {
	NotificationTTL time.Duration
	LoadOnStart     bool
}

// I18nConfig holds locale dictionary configuration
type I18nConfig struct {
	Dir           string
	DefaultLocale string
}

// NATSConfig holds event bus configuration. An empty URL disables the bus.
type NATSConfig struct {
	URL               string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectTimeout    time.Duration
	ViewTopic         string
	NotificationTopic string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("TICKET_STORE_URL", "http://127.0.0.1:8000"),
			// Zero means no timeout, matching the original dashboard.
			RequestTimeout: getEnvAsDuration("TICKET_STORE_TIMEOUT", 0),
		},
		Map: MapConfig{
			DefaultLat:    getEnvAsFloat("MAP_DEFAULT_LAT", 3.1390),
			DefaultLng:    getEnvAsFloat("MAP_DEFAULT_LNG", 101.6869),
			DefaultZoom:   getEnvAsInt("MAP_DEFAULT_ZOOM", 12),
			FocusZoom:     getEnvAsInt("MAP_FOCUS_ZOOM", 14),
			FlyToZoom:     getEnvAsInt("MAP_FLYTO_ZOOM", 20),
			BoundsPad:     getEnvAsFloat("MAP_BOUNDS_PAD", 0.1),
			DensityWeight: getEnvAsFloat("MAP_DENSITY_WEIGHT", 0.6),
		},
		Engine: EngineConfig{
			NotificationTTL: getEnvAsDuration("NOTIFICATION_TTL", 8*time.Second),
			LoadOnStart:     getEnvAsBool("LOAD_ON_START", true),
		},
		I18n: I18nConfig{
			Dir:           getEnv("I18N_DIR", "./i18n"),
			DefaultLocale: getEnv("I18N_DEFAULT_LOCALE", "en"),
		},
		NATS: NATSConfig{
			URL:               getEnv("NATS_URL", ""),
			MaxReconnects:     getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:     getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout:    getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			ViewTopic:         getEnv("NATS_VIEW_TOPIC", "dashboard.view"),
			NotificationTopic: getEnv("NATS_NOTIFICATION_TOPIC", "dashboard.notifications"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "fixmate"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
	}

	return config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
