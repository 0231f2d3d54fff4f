package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config carries everything the binaries need. It is loaded once in main and
// passed down explicitly; no package reads the environment on its own.
type Config struct {
	HTTPPort string

	StoreBackend  string
	StoreFilePath string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MigrationsURL string

	KafkaBrokers []string
	KafkaTopic   string

	AuthToken string
}

func Load() (Config, error) {
	// Optional: a missing .env just means plain environment variables.
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPPort:      getEnv("HTTP_PORT", "9000"),
		StoreBackend:  getEnv("STORE_BACKEND", BackendMemory),
		StoreFilePath: getEnv("STORE_FILE_PATH", "printlink.json"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("POSTGRES_USER", "postgres"),
		DBPassword:    getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:        getEnv("POSTGRES_DB", "printlink"),
		MigrationsURL: getEnv("MIGRATIONS_URL", "file://migrations"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "document_changes"),
		AuthToken:     os.Getenv("PRINTLINK_AUTH_TOKEN"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendFile, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
