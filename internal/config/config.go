package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	Env         string
	LogLevel    string
	FrontendURL string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Pipeline
	PipelineAPIKey string

	// Lending policy
	LoanMaxLTV            float64
	LoanInterestRate      float64
	LoanTermMonths        int
	LoanStrictTransitions bool

	// Platform connections
	ConnectMode        string
	ConnectTimeout     time.Duration
	ConnectBaseURL     string
	ConnectAPIKey      string
	ConnectRateLimit   int
	ConnectSuccessRate float64
	ConnectMinDelay    time.Duration
	ConnectMaxDelay    time.Duration

	// OAuth
	Google OAuthProvider
	GitHub OAuthProvider
}

// OAuthProvider holds the client credentials of one OAuth provider.
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Enabled reports whether the provider has credentials.
func (p OAuthProvider) Enabled() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

const (
	ConnectModeSimulated = "simulated"
	ConnectModeHTTP      = "http"
)

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	port := getEnv("PORT", "8080")
	config := &Config{
		Port:        port,
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "altrion"),
		DBPassword:    getEnv("DB_PASSWORD", "altrion"),
		DBName:        getEnv("DB_NAME", "altrion"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", true),

		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getDuration("JWT_EXPIRES_IN", 15*time.Minute),

		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		LoanMaxLTV:            getFloat("LOAN_MAX_LTV", 60),
		LoanInterestRate:      getFloat("LOAN_INTEREST_RATE", 5.2),
		LoanTermMonths:        getInt("LOAN_TERM_MONTHS", 12),
		LoanStrictTransitions: getBool("LOAN_STRICT_TRANSITIONS", false),

		ConnectMode:        getEnv("CONNECT_MODE", ConnectModeSimulated),
		ConnectTimeout:     getDuration("CONNECT_TIMEOUT", 30*time.Second),
		ConnectBaseURL:     getEnv("CONNECT_BASE_URL", ""),
		ConnectAPIKey:      getEnv("CONNECT_API_KEY", ""),
		ConnectRateLimit:   getInt("CONNECT_RATE_LIMIT", 5),
		ConnectSuccessRate: getFloat("CONNECT_SUCCESS_RATE", 0.85),
		ConnectMinDelay:    getDuration("CONNECT_MIN_DELAY", 1500*time.Millisecond),
		ConnectMaxDelay:    getDuration("CONNECT_MAX_DELAY", 3*time.Second),

		Google: OAuthProvider{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:"+port+"/api/v1/auth/google/callback"),
		},
		GitHub: OAuthProvider{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("GITHUB_CALLBACK_URL", "http://localhost:"+port+"/api/v1/auth/github/callback"),
		},
	}

	if config.LoanTermMonths < 1 {
		log.Printf("Warning: LOAN_TERM_MONTHS must be positive, falling back to 12\n")
		config.LoanTermMonths = 12
	}
	if config.ConnectMode != ConnectModeSimulated && config.ConnectMode != ConnectModeHTTP {
		log.Printf("Warning: unknown CONNECT_MODE '%s', falling back to %s\n", config.ConnectMode, ConnectModeSimulated)
		config.ConnectMode = ConnectModeSimulated
	}
	if config.ConnectMode == ConnectModeHTTP && config.ConnectBaseURL == "" {
		log.Printf("Warning: CONNECT_MODE=http requires CONNECT_BASE_URL, falling back to %s\n", ConnectModeSimulated)
		config.ConnectMode = ConnectModeSimulated
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the active configuration. Tests use it to avoid reading the environment.
func Set(c *Config) {
	appConfig = c
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return f
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}
