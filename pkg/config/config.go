package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Post stores selectable with POST_STORE
const (
	PostStoreMongo = "mongo"
	PostStoreSQL   = "sql"
)

// DefaultJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DefaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	LogFile                 string
	DBDriver                string
	PostgresUrl             string
	SQLitePath              string
	PostStore               string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	FirebaseCredentialsPath string
	ShowedPosts             int
	IndexCacheTTL           time.Duration
	SeedDemo                bool
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present. It reports whether the .env file was found.
func Load() (*Config, bool) {
	dotenv := godotenv.Load() == nil

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFile:                 getEnv("LOG_FILE", "server.log"),
		DBDriver:                strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "postgres"))),
		PostgresUrl:             getEnv("POSTGRES_URL", ""),
		SQLitePath:              getEnv("SQLITE_PATH", "yatube.db"),
		PostStore:               strings.ToLower(strings.TrimSpace(getEnv("POST_STORE", PostStoreMongo))),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "yatube"),
		JWTSecret:               getEnv("JWT_SECRET", DefaultJWTSecret),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		ShowedPosts:             getEnvInt("SHOWED_POSTS", 10),
		IndexCacheTTL:           time.Duration(getEnvInt("INDEX_CACHE_TTL", 20)) * time.Second,
		SeedDemo:                getEnvBool("SEED_DEMO", false),
	}, dotenv
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	switch c.PostStore {
	case PostStoreMongo, PostStoreSQL:
	default:
		return fmt.Errorf("unsupported POST_STORE %q: use %q or %q", c.PostStore, PostStoreMongo, PostStoreSQL)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: use \"postgres\" or \"sqlite\"", c.DBDriver)
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set explicitly in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}
