package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"review-pool.com/review-pool/internal/constants"
)

type Config struct {
	AppURL                  string
	DatabaseDriver          string
	DatabaseDSN             string
	RateLimit               int
	RedisAddr               string
	TransferCacheEnabled    bool
	TransferCacheTTLSeconds int
	ChainRPCURL             string
	ChainCommitment         string
	TreasuryAddress         string
	UnitPriceLamports       int64
	JWTSecret               string
	LogLevel                string
	LogFormat               string
	ShutdownTimeoutSeconds  int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                  fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:          strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:             getEnv("DATABASE_DSN", "reviewpool.db"),
		RateLimit:               getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisAddr:               fmt.Sprintf("%s:%s", redisHost, redisPort),
		TransferCacheEnabled:    getEnvAsBool("TRANSFER_CACHE_ENABLED", false),
		TransferCacheTTLSeconds: getEnvAsInt("TRANSFER_CACHE_TTL_SECONDS", 86400),
		ChainRPCURL:             getEnv("CHAIN_RPC_URL", "https://api.devnet.solana.com"),
		ChainCommitment:         getEnv("CHAIN_COMMITMENT", "finalized"),
		TreasuryAddress:         getEnv("TREASURY_ADDRESS", ""),
		UnitPriceLamports:       getEnvAsInt64("UNIT_PRICE_LAMPORTS", constants.DefaultUnitPrice),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		ShutdownTimeoutSeconds:  getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	if err := validate(cfg); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// LoadJWTSecret reads only the token signing secret, for commands that do not
// serve traffic.
func LoadJWTSecret() (string, error) {
	secret := getEnv("JWT_SECRET", "")
	if err := validateJWTSecret(secret); err != nil {
		return "", err
	}
	return secret, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return errors.New("DATABASE_DRIVER must be sqlite or postgres")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.TransferCacheEnabled && cfg.TransferCacheTTLSeconds <= 0 {
		return errors.New("TRANSFER_CACHE_TTL_SECONDS must be greater than 0")
	}
	if cfg.ChainRPCURL == "" {
		return errors.New("CHAIN_RPC_URL must not be empty")
	}
	if cfg.TreasuryAddress == "" {
		return errors.New("TREASURY_ADDRESS must not be empty")
	}
	if cfg.UnitPriceLamports <= 0 {
		return errors.New("UNIT_PRICE_LAMPORTS must be greater than 0")
	}
	if err := validateJWTSecret(cfg.JWTSecret); err != nil {
		return err
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}
