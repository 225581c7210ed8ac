package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	PORT            string
	LOG_LEVEL       string
	AUTH_API_URL    string
	SESSION_DB_PATH string
	CATALOG_PATH    string
	JWT_SECRET      string
	DB_HOST         string
	DB_PORT         string
	DB_USER         string
	DB_PASSWORD     string
	DB_NAME         string
	KAFKA_ADDRESS   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:            getEnv("PORT", "8080"),
		LOG_LEVEL:       getEnv("LOG_LEVEL", "info"),
		AUTH_API_URL:    os.Getenv("AUTH_API_URL"),
		SESSION_DB_PATH: getEnv("SESSION_DB_PATH", "session.db"),
		CATALOG_PATH:    os.Getenv("CATALOG_PATH"),
		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		DB_HOST:         os.Getenv("DB_HOST"),
		DB_PORT:         os.Getenv("DB_PORT"),
		DB_USER:         os.Getenv("DB_USER"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		KAFKA_ADDRESS:   os.Getenv("KAFKA_ADDRESS"),
	}

	return config, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// InitDB opens the Postgres database the auth endpoint stores accounts in.
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	return db, nil
}
