package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	BaseURL string

	JWTKey         []byte
	JWTExp         time.Duration // local credential logins
	JWTExternalExp time.Duration // delegated identity provider logins

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ResetTokenTTL time.Duration

	// Upstream generative-text service.
	LLMProvider    string // "gemini", "openai" or "mock"
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	LLMTimeout     time.Duration
	LLMMaxAttempts int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	UploadDir        string
	MaxResumeBytes   int64
	LeaderboardLimit int
	DefaultPageSize  int
	MaxPriorTitles   int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "8080"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		JWTKey:         []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:         time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 168)) * time.Hour,
		JWTExternalExp: time.Duration(getEnvAsInt("JWT_EXTERNAL_EXPIRATION_HOURS", 24)) * time.Hour,
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "user"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "prepforge_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		ResetTokenTTL:  time.Duration(getEnvAsInt("RESET_TOKEN_TTL_MINUTES", 10)) * time.Minute,

		LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMTimeout:     time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		LLMMaxAttempts: getEnvAsInt("LLM_MAX_ATTEMPTS", 3),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/login/external/callback"),

		UploadDir:        getEnv("UPLOAD_DIR", os.TempDir()),
		MaxResumeBytes:   int64(getEnvAsInt("MAX_RESUME_BYTES", 5<<20)),
		LeaderboardLimit: getEnvAsInt("LEADERBOARD_LIMIT", 20),
		DefaultPageSize:  getEnvAsInt("DEFAULT_PAGE_SIZE", 20),
		MaxPriorTitles:   getEnvAsInt("MAX_PRIOR_TITLES", 50),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
