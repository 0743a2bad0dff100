package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Timeout bounds a whole request including the body read.
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"15s"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	// MaxBodyBytes caps how much of each page is read.
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"5242880"`
	UserAgent    string `envconfig:"USER_AGENT" default:"storefront-crawler/1.0 (+https://example.com)"`

	ProductLimit int `envconfig:"PRODUCT_LIMIT" default:"5"`
	// AnchorFallback also discovers products from listing anchors of any
	// collection when no /collections/all/products/ link is found.
	AnchorFallback bool `envconfig:"ANCHOR_FALLBACK" default:"false"`
	// Workers is the number of domains resolved at once. 1 keeps runs sequential.
	Workers int `envconfig:"WORKERS" default:"1"`

	ErrorLog   string `envconfig:"ERROR_LOG" default:"error.log"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerAddr string `envconfig:"SERVER_ADDR" default:":8080"`
}

const prefix = "CRAWLER"

// Load reads an optional .env file, then CRAWLER_* environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ProductLimit < 0 {
		return fmt.Errorf("%s_PRODUCT_LIMIT must not be negative", prefix)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%s_WORKERS must be at least 1", prefix)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%s_MAX_BODY_BYTES must be positive", prefix)
	}
	return nil
}
