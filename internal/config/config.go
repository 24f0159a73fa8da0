package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string
	LogLevel         string
	HTTPAddr         string
	PersistBackend   string
	DataFile         string
	SimulatedLatency time.Duration
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			HTTPAddr:         getEnv("HTTP_ADDR", ":8088"),
			PersistBackend:   getEnv("PERSIST_BACKEND", "file"),
			DataFile:         getEnv("DATA_FILE", "data/sleepr.json"),
			SimulatedLatency: getEnvDuration("SIMULATED_LATENCY_MS", 0),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.PersistBackend != "file" && c.PersistBackend != "memory" {
		return errors.New("PERSIST_BACKEND must be one of: file, memory")
	}
	if c.PersistBackend == "file" && c.DataFile == "" {
		return errors.New("File persistence requires DATA_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
