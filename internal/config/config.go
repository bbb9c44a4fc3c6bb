package config

import (
	"os"
	"strconv"
	"time"

	"wordle_duel/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	DBMaxConns    int32
	JWTSecret     string
	JWTTTL        time.Duration
	AllowedOrigin string

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	GameRateLimit  int
	GameRateWindow time.Duration

	// Game rules
	RecentWordWindowDays int
	WordChoiceCount      int
	MinWordFrequency     int64
	PollInterval         time.Duration
	LexiconCacheTTL      time.Duration
}

// Load reads .env (if present) and the environment. DATABASE_URL and JWT_SECRET are required.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	cfg := fromEnv()
	cfg.DatabaseURL = dbURL
	cfg.JWTSecret = jwtSecret
	return cfg
}

// fromEnv fills everything that has a default.
func fromEnv() *Config {
	return &Config{
		AppPort:       envString("APP_PORT", "8080"),
		DBMaxConns:    int32(envInt("DB_MAX_CONNS", 10)),
		JWTTTL:        time.Duration(envInt("JWT_TTL_HOURS", 24)) * time.Hour,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		APIRateLimit:   envInt("API_RATE_LIMIT", 120),
		APIRateWindow:  time.Duration(envInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		GameRateLimit:  envInt("GAME_RATE_LIMIT", 60),
		GameRateWindow: time.Duration(envInt("GAME_RATE_WINDOW", 60)) * time.Second,

		RecentWordWindowDays: envInt("RECENT_WORD_WINDOW_DAYS", 365),
		WordChoiceCount:      envInt("WORD_CHOICE_COUNT", 12),
		MinWordFrequency:     int64(envInt("MIN_WORD_FREQUENCY", 20)),
		PollInterval:         time.Duration(envInt("POLL_INTERVAL_SECONDS", 5)) * time.Second,
		LexiconCacheTTL:      time.Duration(envInt("LEXICON_CACHE_TTL_SECONDS", 3600)) * time.Second,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt returns def unless key holds a positive integer. REDIS_DB also accepts 0.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && key != "REDIS_DB") {
		logger.Warn("ignoring invalid config value", "key", key, "value", v)
		return def
	}
	return n
}
