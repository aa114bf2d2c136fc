package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/wicaksana/kedai/pricing"
)

var (
	SecretKey   []byte
	Port        string
	DatabaseURL string
)

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	DatabaseURL = os.Getenv("DATABASE_URL")
	if DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	Port = os.Getenv("SERVER_PORT")
	if Port == "" {
		Port = ":8080"
	}
}

// Pricing builds the pricing configuration, starting from the defaults and
// applying TAX_RATE_PERCENT / DELIVERY_FEE overrides when set.
func Pricing() pricing.Config {
	cfg := pricing.DefaultConfig()

	if v := os.Getenv("TAX_RATE_PERCENT"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("invalid TAX_RATE_PERCENT %q: %v", v, err)
		}
		cfg.TaxRate = rate.Div(decimal.NewFromInt(100))
	}
	if v := os.Getenv("DELIVERY_FEE"); v != "" {
		fee, err := decimal.NewFromString(v)
		if err != nil {
			log.Fatalf("invalid DELIVERY_FEE %q: %v", v, err)
		}
		cfg.DeliveryFee = fee
	}
	return cfg
}
