package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/linesmerrill/fir-document-api/models"
)

// Config holds the project config values
type Config struct {
	BaseUrl        string
	Port           string
	Environment    string
	RequestTimeout time.Duration
	Agency         models.Agency
	Location       *time.Location
	Gemini         GeminiConfig
	RateLimit      RateLimitConfig
	PDF            PDFConfig
}

// GeminiConfig holds the narrative drafting credentials. The key never
// leaves the server.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RateLimitConfig is the per client request budget. X-Forwarded-For is only
// read from requests arriving through one of TrustedProxies.
type RateLimitConfig struct {
	Requests       int
	Window         time.Duration
	TrustedProxies []string
}

// PDFConfig controls the generated documents
type PDFConfig struct {
	Compress bool
	Verify   bool
}

// New sets up all config related services
func New() *Config {
	// a missing .env is normal outside local development
	envErr := godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")
	logger, err := setLogger(environment)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)
	if envErr != nil {
		zap.S().Debugw("no .env file loaded", "error", envErr)
	}

	agencyFile := os.Getenv("AGENCY_CONFIG")
	agency, err := LoadAgency(agencyFile)
	if err != nil {
		zap.S().Errorw("failed to load agency profile, using defaults",
			"path", agencyFile,
			"error", err,
		)
		agency = models.DefaultAgency()
	}

	return &Config{
		BaseUrl:        os.Getenv("BASE_URL"),
		Port:           getEnv("PORT", "8080"),
		Environment:    environment,
		RequestTimeout: parseDuration(os.Getenv("REQUEST_TIMEOUT"), 30*time.Second),
		Agency:         agency,
		Location:       Location(agency.TimeZone),
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
			Model:  os.Getenv("GEMINI_MODEL"),
		},
		RateLimit: RateLimitConfig{
			Requests:       parseInt(os.Getenv("RATE_LIMIT_REQUESTS"), 60),
			Window:         parseDuration(os.Getenv("RATE_LIMIT_WINDOW"), 60*time.Second),
			TrustedProxies: parseList(os.Getenv("TRUSTED_PROXIES")),
		},
		PDF: PDFConfig{
			Compress: parseBool(os.Getenv("PDF_COMPRESS"), true),
			Verify:   parseBool(os.Getenv("PDF_VERIFY"), true),
		},
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	resp := models.ErrorMessageResponse{Response: models.MessageError{Message: message}}
	if err != nil {
		resp.Response.Error = err.Error()
	}
	if httpStatusCode >= http.StatusInternalServerError {
		zap.S().Errorw(message, "status", httpStatusCode, "error", err)
	} else {
		zap.S().Debugw(message, "status", httpStatusCode, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	if i, err := strconv.Atoi(s); err == nil && i > 0 {
		return i
	}
	return defaultValue
}

func parseBool(s string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultValue
}

// parseList splits a comma separated value, dropping empty entries
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration accepts Go durations ("45s", "2m") or a plain number of
// seconds
func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	if i, err := strconv.Atoi(s); err == nil && i > 0 {
		return time.Duration(i) * time.Second
	}
	return defaultValue
}
