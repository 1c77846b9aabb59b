package config

import (
	"log"
	"os"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID  string
	GCPLocation   string
	ModelName     string // conversation model
	GateModelName string // cheaper model used for scope checks

	StorageURL string // afs base URL: s3://bucket, file:///path, mem://localhost/bucket
	GatePolicy string // "fail_open" or "fail_closed"
	UseMockLLM bool   // true = use mock even on GCP
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("PHILO_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	defaultStorage := "mem://localhost/philo-ai"
	if mode == ModeGCP {
		defaultStorage = "s3://philo-ai"
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("PHILO_PORT", "8080"),

		GCPProjectID:  getEnv("PHILO_GCP_PROJECT", ""),
		GCPLocation:   getEnv("PHILO_GCP_LOCATION", "us-central1"),
		ModelName:     getEnv("PHILO_MODEL_NAME", "gemini-2.5-flash"),
		GateModelName: getEnv("PHILO_GATE_MODEL_NAME", "gemini-2.5-flash-lite"),

		StorageURL: getEnv("PHILO_STORAGE_URL", defaultStorage),
		GatePolicy: getEnv("PHILO_GATE_POLICY", "fail_open"),
		UseMockLLM: getBoolEnv("PHILO_USE_MOCK_LLM", mode == ModeLocal),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && !cfg.UseMockLLM && cfg.GCPProjectID == "" {
		log.Fatal("PHILO_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
