package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	ServerPort     int
	FrontendOrigin string

	// Time zone used when formatting order timestamps in responses.
	OrdersTimezone string

	KafkaBrokers []string

	LogLevel string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     EnvDefault("DB_PORT", "5432"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     EnvDefault("DB_NAME", os.Getenv("DB_DATABASE")),

		ServerPort:     EnvIntDefault("SERVER_PORT", 4000),
		FrontendOrigin: EnvDefault("FRONTEND_ORIGIN", "http://localhost:5173"),

		OrdersTimezone: EnvDefault("ORDERS_TIMEZONE", "Asia/Kolkata"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

// MustValidate exits the process when a required connection value is missing.
func (c *Config) MustValidate() {
	MustNonEmpty(c.DB_HOST, "DB_HOST")
	MustNonEmpty(c.DB_USER, "DB_USER")
	MustNonEmpty(c.DB_NAME, "DB_NAME")
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}
