package config

import (
	"os"

	"github.com/adelacruz/timeplan/internal/clock"
)

type Config struct {
	DBDriver      string // sqlite, mysql or postgres
	DBPath        string // sqlite file path
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	Timezone      string
	SessionSecret string
	GinMode       string
	ListenAddr    string
}

func Load() *Config {
	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBPath:        getEnv("DB_PATH", "timeplan.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "timeplan"),
		DBPassword:    getEnv("DB_PASSWORD", "timeplan"),
		DBName:        getEnv("DB_NAME", "timeplan"),
		Timezone:      getEnv("TIMEPLAN_TZ", clock.DefaultTimezone),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
