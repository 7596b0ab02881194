package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Key-value backends
const (
	KVBackendMemory   = "memory"
	KVBackendFile     = "file"
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
	KVBackendR2       = "r2"
)

// Reporting sinks
const (
	ReportSinkNone     = "none"
	ReportSinkFacebook = "facebook"
	ReportSinkKafka    = "kafka"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	// Wishlist persistence
	KVBackend   string
	KVTimeout   time.Duration
	KVFilePath  string
	WishlistKey string
	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Postgres
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2KeyPrefix       string
	// Analytics
	DefaultCurrency  string
	ReportSink       string
	ReportQueueSize  int
	ReportRatePerSec float64
	ReportTimeout    time.Duration
	FBPixelID        string
	FBAccessToken    string
	FBAPIVersion     string
	KafkaBrokers     []string
	KafkaTopic       string
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// .env is optional; containers configure through the environment.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		KVBackend:   strings.ToLower(getEnv("KV_BACKEND", KVBackendFile)),
		KVTimeout:   getDurationEnv("KV_TIMEOUT", 2*time.Second),
		KVFilePath:  getEnv("KV_FILE_PATH", "data/storage.json"),
		WishlistKey: getEnv("WISHLIST_KEY", "lumiere-wishlist"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 5),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 1),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2KeyPrefix:       getEnv("R2_KEY_PREFIX", "storefront"),

		DefaultCurrency:  getEnv("DEFAULT_CURRENCY", "USD"),
		ReportSink:       strings.ToLower(getEnv("REPORT_SINK", ReportSinkNone)),
		ReportQueueSize:  getIntEnv("REPORT_QUEUE_SIZE", 256),
		ReportRatePerSec: getFloatEnv("REPORT_RATE_PER_SEC", 20),
		ReportTimeout:    getDurationEnv("REPORT_TIMEOUT", 10*time.Second),
		FBPixelID:        getEnv("FB_PIXEL_ID", ""),
		FBAccessToken:    getEnv("FB_ACCESS_TOKEN", ""),
		FBAPIVersion:     getEnv("FB_API_VERSION", "v19.0"),
		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "storefront.analytics"),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	return cfg
}

// Validate reports configuration that cannot produce a working core.
func (c *Config) Validate() error {
	switch c.KVBackend {
	case KVBackendMemory:
	case KVBackendFile:
		if c.KVFilePath == "" {
			return fmt.Errorf("KV_FILE_PATH is required for the file backend")
		}
	case KVBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case KVBackendPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DB_DSN is required for the postgres backend")
		}
	case KVBackendR2:
		if c.R2AccountID == "" || c.R2BucketName == "" {
			return fmt.Errorf("R2_ACCOUNT_ID and R2_BUCKET_NAME are required for the r2 backend")
		}
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", c.KVBackend)
	}

	switch c.ReportSink {
	case ReportSinkNone, "":
	case ReportSinkFacebook:
		if c.FBPixelID == "" || c.FBAccessToken == "" {
			return fmt.Errorf("FB_PIXEL_ID and FB_ACCESS_TOKEN are required for the facebook sink")
		}
	case ReportSinkKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required for the kafka sink")
		}
	default:
		return fmt.Errorf("unknown REPORT_SINK %q", c.ReportSink)
	}

	if c.KVTimeout <= 0 && c.KVBackend != KVBackendMemory && c.KVBackend != KVBackendFile {
		return fmt.Errorf("KV_TIMEOUT must be positive, got %s", c.KVTimeout)
	}
	if c.ReportTimeout <= 0 && c.ReportSink != ReportSinkNone && c.ReportSink != "" {
		return fmt.Errorf("REPORT_TIMEOUT must be positive, got %s", c.ReportTimeout)
	}

	if c.WishlistKey == "" {
		return fmt.Errorf("WISHLIST_KEY must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}
