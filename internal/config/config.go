package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	StripeSecret    string
	RedisAddr       string
	RabbitURL       string
	RateLimitPerMin int
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "5000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "hopePulse"),
		JWTSecret:       getenv("ACCESS_TOKEN_SECRET", "default_secret_key"),
		StripeSecret:    getenv("STRIPE_SECRET_KEY", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RabbitURL:       getenv("RABBIT_URL", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "30")),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
