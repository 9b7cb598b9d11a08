package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	OrderService OrderServiceConfig
	Gateway      GatewayConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig enables the distributed per-order lock. An empty Addr means the
// service runs with the in-process lock only (fine for a single instance).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// LockExpiry bounds how long a crashed holder can keep an order locked.
	// Keep it above the gateway and order-service timeouts combined.
	LockExpiry time.Duration
}

type OrderServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GatewayConfig struct {
	SuccessPercent int // simulated settle rate of the mock gateway
	Timeout        time.Duration
}

func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:         getenv("SERVER_PORT", "8086"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DB_DSN", "artisan:artisan@tcp(localhost:3306)/artisan_payments?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         getenvInt("REDIS_DB", 0),
			LockExpiry: getenvDuration("LOCK_EXPIRY", 30*time.Second),
		},
		OrderService: OrderServiceConfig{
			BaseURL: getenv("ORDER_SERVICE_URL", "http://localhost:8083"),
			Timeout: getenvDuration("ORDER_SERVICE_TIMEOUT", 5*time.Second),
		},
		Gateway: GatewayConfig{
			SuccessPercent: getenvInt("GATEWAY_SUCCESS_PERCENT", 80),
			Timeout:        getenvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
