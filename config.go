package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the API. HOME_DIR is
// deliberately absent: the image pipeline reads it fresh per batch.
type Config struct {
	Port            string // HTTP port (default: 8001)
	AppEnv          string // "production" or anything else for development
	MongoURI        string // MongoDB connection string
	DBName          string // Database name (default: inletshop)
	StripeSecretKey string // Stripe secret key for Connect onboarding
	ZeptoToken      string // ZeptoMail API token for password emails
}

// LoadConfig loads environment variables into a Config and validates
// them. Development gets local defaults; production requires the
// external credentials.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          os.Getenv("DB_NAME"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		ZeptoToken:      os.Getenv("ZEPTO_TOKEN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8001"
	}
	if cfg.DBName == "" {
		cfg.DBName = "inletshop"
	}

	if cfg.AppEnv == "production" {
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required")
		}
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
		}
		if cfg.ZeptoToken == "" {
			return nil, fmt.Errorf("ZEPTO_TOKEN is required")
		}
	} else if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://127.0.0.1:27017"
	}

	return cfg, nil
}
