package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config is the stroke risk server configuration
type Config struct {
	HTTP struct {
		Addr string
		// BaseURL is the public URL of this server, used to link pies from assessments
		BaseURL          string
		CORSAllowOrigins []string
	}
	StoreDriver string
	Mongo       struct {
		Host     string
		Database string
	}
	Database DatabaseConfig
	Log      struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from the environment.  Variables in a .env file in the working directory are
// loaded first but never override ones already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":9000")
	cfg.HTTP.BaseURL = strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:9000"), "/")
	cfg.HTTP.CORSAllowOrigins = splitList(getEnv("CORS_ALLOW_ORIGINS", "*"))

	cfg.StoreDriver = getEnv("STORE_DRIVER", DriverMongo)
	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Check for a linked MongoDB container if we are running in Docker
	cfg.Mongo.Host = getEnv("MONGO_HOST", getEnv("MONGO_PORT_27017_TCP_ADDR", "localhost"))
	cfg.Mongo.Database = getEnv("MONGO_DB", "strokerisk")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "strokerisk")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
