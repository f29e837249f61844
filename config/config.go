package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	ServerAddr string

	// Auth
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	// EnforceOwnership makes feedback and password updates require a token
	// whose subject matches the path id.
	EnforceOwnership bool
	// UsernameMaxAttempts bounds handle probes during registration.
	UsernameMaxAttempts int
	StoreDriver         string

	// MySQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string
	MinioPublicURL string

	// News providers
	MediastackURL       string
	MediastackKey       string
	MediastackCountries string
	MediastackLanguages string
	NewsdataURL         string
	NewsdataKey         string
	NewsTimeout         time.Duration

	// Logging
	LogLevel      string
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	// Client
	APIBaseURL  string
	SessionFile string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".inshpho", "session.json")
	}
	return filepath.Join(home, ".inshpho", "session.json")
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load does not override variables that are already set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":5000"),

		JWTSecret:           os.Getenv("JWT_SECRET"),
		TokenTTL:            getEnvDuration("TOKEN_TTL", time.Hour),
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		EnforceOwnership:    getEnvBool("AUTH_ENFORCE_OWNERSHIP", true),
		UsernameMaxAttempts: getEnvInt("USERNAME_MAX_ATTEMPTS", 100),
		StoreDriver:         getEnv("STORE_DRIVER", "mysql"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "inshpho"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "inshpho"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),

		MediastackURL:       getEnv("MEDIASTACK_URL", "http://api.mediastack.com/v1"),
		MediastackKey:       os.Getenv("MEDIASTACK_KEY"),
		MediastackCountries: getEnv("MEDIASTACK_COUNTRIES", "in"),
		MediastackLanguages: getEnv("MEDIASTACK_LANGUAGES", "en"),
		NewsdataURL:         getEnv("NEWSDATA_URL", "https://newsdata.io/api/1"),
		NewsdataKey:         os.Getenv("NEWSDATA_KEY"),
		NewsTimeout:         getEnvDuration("NEWS_TIMEOUT", 10*time.Second),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 30),

		APIBaseURL:  getEnv("API_BASE_URL", "http://127.0.0.1:5000"),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
	}
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
