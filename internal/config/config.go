// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
)

// Prediction modes.
const (
	ModeSimulate = "simulate"
	ModeRemote   = "remote"
)

type Config struct {
	Port    string
	Predict PredictConfig
}

type PredictConfig struct {
	Mode            string
	Endpoint        string
	TimeoutSeconds  int
	SimDelaySeconds int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Predict: PredictConfig{
			Mode:            getEnv("PREDICT_MODE", ModeSimulate),
			Endpoint:        getEnv("PREDICT_ENDPOINT", "http://localhost:8000/predict_base64"),
			TimeoutSeconds:  getEnvAsInt("PREDICT_TIMEOUT_SECONDS", 30),
			SimDelaySeconds: getEnvAsInt("SIM_DELAY_SECONDS", 3),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
