package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTLHours  int
	RateLimitRPS   float64
	RateLimitBurst int
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BusinessConfig struct {
	DiscountNValue     int
	DiscountPercentage float64
	StatsIntervalSecs  int
}

func Load() *Config {
	_ = godotenv.Load()

	tokenTTL, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	rateRPS, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	rateBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	discountN, _ := strconv.Atoi(getEnv("DISCOUNT_N_VALUE", "3"))
	discountPct, _ := strconv.ParseFloat(getEnv("DISCOUNT_PERCENTAGE", "10"), 64)
	statsInterval, _ := strconv.Atoi(getEnv("STATS_INTERVAL_SECONDS", "15"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTLHours:  tokenTTL,
			RateLimitRPS:   rateRPS,
			RateLimitBurst: rateBurst,
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Business: BusinessConfig{
			DiscountNValue:     discountN,
			DiscountPercentage: discountPct,
			StatsIntervalSecs:  statsInterval,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
