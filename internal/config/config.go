package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port int
	DB   DBConfig
}

// DBConfig describes the Postgres connection.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the GORM/pgx connection string. connect_timeout bounds how long
// a new connection may take to establish.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s connect_timeout=5",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Load reads configuration from the environment, applying defaults for
// anything unset. A .env file is honored via godotenv autoload.
func Load() Config {
	sslMode := "disable"
	if envBool("DB_SSL", false) {
		sslMode = "require"
	}
	return Config{
		Port: envInt("PORT", 8080),
		DB: DBConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", ""),
			Name:     envString("DB_NAME", "task_manager"),
			SSLMode:  sslMode,
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
