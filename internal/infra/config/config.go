package config

import (
	"fmt"
	"os"
	"strings"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	StorageMode      string // memory | mongo
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaTopicPrefix string
	PricingFixtures  string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "surfhouse"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		PricingFixtures:  getEnv("PRICING_FIXTURES", "configs/pricing.yaml"),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.StorageMode != "memory" && cfg.StorageMode != "mongo" {
		return Config{}, fmt.Errorf("config: unsupported STORAGE_MODE %q", cfg.StorageMode)
	}
	if cfg.StorageMode == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("config: MONGO_URI required when STORAGE_MODE=mongo")
	}
	return cfg, nil
}

// LeadEventsTopic returns the kafka topic lead lifecycle events go to.
func (c Config) LeadEventsTopic() string {
	return c.KafkaTopicPrefix + "surfhouse.leads"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
