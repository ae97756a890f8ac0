package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/consumer"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
	"github.com/VedantKadlaKK/bookverse/internal/publisher"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Kafka     KafkaConfig
	Simulator SimulatorConfig
	Payment   PaymentConfig
}

type AppConfig struct {
	Env string
}

type ServerConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateBurst       int
}

type StoreConfig struct {
	Backend   string
	KeyPrefix string
	Mongo     MongoConfig
	Postgres  PostgresConfig
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    int
	MinPoolSize    int
}

type PostgresConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	MigrationsDir string
}

// RedisConfig enables the snapshot cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig picks the catalog source. File wins over DBPath; with neither
// the built-in list is used.
type CatalogConfig struct {
	File          string
	DBPath        string
	MigrationsDir string
}

// KafkaConfig enables event publishing and the fulfillment consumer when
// Brokers is non-empty.
type KafkaConfig struct {
	Brokers          []string
	OrderEventsTopic string
	FulfillmentTopic string
	ConsumerGroup    string
}

type SimulatorConfig struct {
	Enabled         bool
	ProcessingAfter time.Duration
	ShippedAfter    time.Duration
}

type PaymentConfig struct {
	UPIPayee  string
	PayeeName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Host:            getEnv("HTTP_HOST", ""),
			Port:            getEnvAsInt("HTTP_PORT", 8080),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimit:       getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateBurst:       getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Store: StoreConfig{
			Backend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
			KeyPrefix: getEnv("STORE_KEY_PREFIX", repository.DefaultKeyPrefix),
			Mongo: MongoConfig{
				URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
				Database:       getEnv("MONGO_DB", "bookverse"),
				ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
				MaxPoolSize:    getEnvAsInt("MONGO_MAX_POOL_SIZE", 10),
				MinPoolSize:    getEnvAsInt("MONGO_MIN_POOL_SIZE", 1),
			},
			Postgres: PostgresConfig{
				Host:          getEnv("POSTGRES_HOST", "localhost"),
				Port:          getEnvAsInt("POSTGRES_PORT", 5432),
				User:          getEnv("POSTGRES_USER", "postgres"),
				Password:      getEnv("POSTGRES_PASSWORD", ""),
				DBName:        getEnv("POSTGRES_DB", "bookverse"),
				MigrationsDir: getEnv("POSTGRES_MIGRATIONS_DIR", "internal/repository/migrations"),
			},
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			File:          getEnv("CATALOG_FILE", ""),
			DBPath:        getEnv("CATALOG_DB", ""),
			MigrationsDir: getEnv("CATALOG_MIGRATIONS_DIR", "internal/catalog/migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:          splitAndTrim(getEnv("KAFKA_BROKERS", "")),
			OrderEventsTopic: getEnv("KAFKA_ORDER_EVENTS_TOPIC", publisher.DefaultOrderEventsTopic),
			FulfillmentTopic: getEnv("KAFKA_FULFILLMENT_TOPIC", consumer.DefaultFulfillmentTopic),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", consumer.DefaultGroupID),
		},
		Simulator: SimulatorConfig{
			Enabled:         getEnvAsBool("SIMULATE_FULFILLMENT", true),
			ProcessingAfter: getEnvAsDuration("SIMULATE_PROCESSING_AFTER", 5*time.Second),
			ShippedAfter:    getEnvAsDuration("SIMULATE_SHIPPED_AFTER", 15*time.Second),
		},
		Payment: PaymentConfig{
			UPIPayee:  getEnv("UPI_PAYEE", payment.DefaultPayee),
			PayeeName: getEnv("UPI_PAYEE_NAME", payment.DefaultPayeeName),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d is invalid", c.Server.Port))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is on"))
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		m := c.Store.Mongo
		if m.URI == "" || m.Database == "" {
			errs = append(errs, errors.New("mongo store config is incomplete"))
		}
		if m.MinPoolSize < 0 || m.MaxPoolSize < m.MinPoolSize {
			errs = append(errs, fmt.Errorf("mongo pool sizes %d..%d are invalid", m.MinPoolSize, m.MaxPoolSize))
		}
	case StorePostgres:
		p := c.Store.Postgres
		if p.Host == "" || p.User == "" || p.DBName == "" || p.Port <= 0 {
			errs = append(errs, errors.New("postgres store config is incomplete"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q is not one of memory, mongo, postgres", c.Store.Backend))
	}

	if c.Simulator.Enabled {
		if c.Simulator.ProcessingAfter <= 0 || c.Simulator.ShippedAfter <= c.Simulator.ProcessingAfter {
			errs = append(errs, errors.New("simulator delays must be positive and shipped must come after processing"))
		}
	}
	if len(c.Kafka.Brokers) > 0 && (c.Kafka.OrderEventsTopic == "" || c.Kafka.FulfillmentTopic == "") {
		errs = append(errs, errors.New("kafka topics must be set when brokers are configured"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
