package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	ServerPort        string
	StoreBackend      string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	JWTSecret         string
	SessionTTL        time.Duration
	EnforceRolePolicy bool
	ValidateRecords   bool
	PasswordMode      string
	SwaggerHost       string
	CORSOrigins       []string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		MySQLDSN:          getEnv("MYSQL_DSN", buildDSN()),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
		EnforceRolePolicy: getEnvBool("ENFORCE_ROLE_POLICY", true),
		ValidateRecords:   getEnvBool("VALIDATE_RECORDS", false),
		PasswordMode:      strings.ToLower(getEnv("AUTH_PASSWORD_MODE", "plain")),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func buildDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = getEnv("MYSQL_USER", "recordshop")
	cfg.Passwd = getEnv("MYSQL_PASSWORD", "password")
	cfg.Net = "tcp"
	cfg.Addr = getEnv("MYSQL_ADDR", "localhost:3306")
	cfg.DBName = getEnv("MYSQL_DATABASE", "recordshop")
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
