package config

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/logging"
)

// Config holds the project config values
type Config struct {
	Env             string
	Port            string
	BaseURL         string
	APIURL          string
	SessionHashKey  string
	SessionBlockKey string
	SecureCookies   bool
	JWTSecret       string
	RequestTimeout  time.Duration
	APITimeout      time.Duration
	UserCacheTTL    time.Duration
	RecentRefresh   string
	RecentLimit     int
}

// New sets up all config related services
func New() *Config {
	env := getEnv("ENV", "local")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Env:             env,
		Port:            getEnv("PORT", "3000"),
		BaseURL:         os.Getenv("BASE_URL"),
		APIURL:          getEnv("API_URL", "http://localhost:5000/api"),
		SessionHashKey:  os.Getenv("SESSION_HASH_KEY"),
		SessionBlockKey: os.Getenv("SESSION_BLOCK_KEY"),
		SecureCookies:   getBool("SECURE_COOKIES", false),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		APITimeout:      getDuration("API_TIMEOUT", 10*time.Second),
		UserCacheTTL:    getDuration("USER_CACHE_TTL", 10*time.Minute),
		RecentRefresh:   getEnv("RECENT_REFRESH", "@every 5m"),
		RecentLimit:     getInt("RECENT_LIMIT", 6),
	}
}

// IsProduction reports whether insecure defaults must be refused
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func setLogger(env string) (*zap.Logger, error) {
	return logging.New(env)
}

// ErrorStatus is a useful function that will log, write http headers and a
// minimal html body for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(httpStatusCode)
	_, _ = fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>%d %s</h1><p>%s</p></body></html>",
		httpStatusCode, http.StatusText(httpStatusCode), html.EscapeString(message))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
