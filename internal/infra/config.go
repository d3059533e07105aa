package infra

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// StoreDriver names the backing database for products and generation logs.
type StoreDriver string

const (
	StoreDriverMongo    StoreDriver = "mongo"
	StoreDriverPostgres StoreDriver = "postgres"
)

var defaultImageModels = []string{
	"imagen-4.0-generate-001",
	"imagen-3.0-generate-002",
	"imagen-3.0-generate-001",
}

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	DatabaseName       string
	StoreDriver        StoreDriver
	PublicBaseURL      string
	StoragePath        string
	PublicPathPrefix   string
	GeminiAPIKey       string
	ImageAPIKey        string
	GeminiBaseURL      string
	ImageModels        []string
	TextModel          string
	GenerationTimeout  time.Duration
	MaxUploadBytes     int64
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg, err := LoadStoreConfig()
	if err != nil {
		return nil, err
	}
	if len(cfg.ImageModels) == 0 {
		return nil, fmt.Errorf("IMAGE_MODELS must list at least one model")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return cfg, nil
}

// LoadStoreConfig loads the same settings as LoadConfig but only requires the
// database ones. Offline tooling uses it.
func LoadStoreConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabaseName:       getEnv("DATABASE_NAME", "products"),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		StoragePath:        getEnv("STORAGE_PATH", "./public"),
		PublicPathPrefix:   "/" + strings.Trim(getEnv("PUBLIC_PATH_PREFIX", "/public"), "/"),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ImageModels:        splitList(os.Getenv("IMAGE_MODELS")),
		TextModel:          getEnv("TEXT_MODEL", "gemini-2.5-flash"),
		GenerationTimeout:  time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 60)),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
	cfg.ImageAPIKey = getEnv("IMAGE_API_KEY", cfg.GeminiAPIKey)

	if _, set := os.LookupEnv("IMAGE_MODELS"); !set {
		cfg.ImageModels = append([]string(nil), defaultImageModels...)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	driver, err := driverForURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	cfg.StoreDriver = driver

	return cfg, nil
}

// PublicAssetBaseURL is the externally resolvable prefix of stored assets.
func (c *Config) PublicAssetBaseURL() string {
	return c.PublicBaseURL + c.PublicPathPrefix
}

func driverForURL(raw string) (StoreDriver, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return StoreDriverMongo, nil
	case "postgres", "postgresql":
		return StoreDriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
