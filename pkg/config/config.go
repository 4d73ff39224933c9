package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ProjectName string   `yaml:"project_name"`
	Version     string   `yaml:"version"`
	Debug       bool     `yaml:"debug"`
	Port        string   `yaml:"port"`
	DatabaseURL string   `yaml:"database_url"`
	DBMaxConns  int      `yaml:"db_max_conns"`
	CORSOrigins []string `yaml:"cors_origins"`

	LogEnv   string `yaml:"log_env"`
	LogLevel string `yaml:"log_level"`

	JWTSecret     string `yaml:"jwt_secret"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	JWTTTLMinutes int    `yaml:"access_token_expire_minutes"`
	BcryptCost    int    `yaml:"bcrypt_cost"`
}

// Defaults mirror a local development setup.
func Defaults() Config {
	return Config{
		ProjectName:   "Simple Shop",
		Version:       "1.0.0",
		Port:          "8080",
		DatabaseURL:   "sqlite:shop.db",
		DBMaxConns:    10,
		CORSOrigins:   []string{"http://localhost:3000", "http://localhost:8000"},
		LogEnv:        "dev",
		LogLevel:      "info",
		JWTSecret:     "dev-secret-change",
		JWTIssuer:     "simple-shop",
		JWTTTLMinutes: 30,
		BcryptCost:    10,
	}
}

// Load reads environment variables, optionally from a .env file if present.
// When CONFIG_FILE names a YAML file its values replace the defaults; environment
// variables win over both.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ProjectName = getEnv("PROJECT_NAME", cfg.ProjectName)
	cfg.Version = getEnv("VERSION", cfg.Version)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = getEnvInt("DB_MAX_CONNS", cfg.DBMaxConns)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	cfg.LogEnv = getEnv("LOG_ENV", cfg.LogEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", getEnv("SECRET_KEY", cfg.JWTSecret))
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", cfg.JWTTTLMinutes)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", cfg.BcryptCost)
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
