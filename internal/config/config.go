package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Search settings
	SearchRadii      []float64     // Expanding search radii in meters (default: 2000, 7000, 12000)
	FreshnessWindow  time.Duration // Max age of a user location fix to trust it (default: 10m)
	MaxNearbyUsers   int           // Default nearby-user recipients per alert (default: 3)
	NearbyUsersCeil  int           // Hard ceiling on nearby-user recipients (default: 10)
	MaxServiceHits   int           // Service locations notified per alert (default: 3)
	BoundingBoxLimit int           // Raw rows pulled per bounding-box pass (default: 200)
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	smtpPort := 587
	if portEnv := os.Getenv("SMTP_PORT"); portEnv != "" {
		val, err := strconv.Atoi(portEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT value: %v", err)
		}
		smtpPort = val
	}

	radii := []float64{2000, 7000, 12000}
	if radiiEnv := os.Getenv("SEARCH_RADII"); radiiEnv != "" {
		parsed, err := parseRadii(radiiEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid SEARCH_RADII value: %v", err)
		}
		radii = parsed
	}

	cfg := &Config{
		AppPort:    os.Getenv("SOS_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		SearchRadii:      radii,
		FreshnessWindow:  durationEnv("FRESHNESS_WINDOW", 10*time.Minute),
		MaxNearbyUsers:   intEnv("MAX_NEARBY_USERS", 3),
		NearbyUsersCeil:  intEnv("NEARBY_USERS_CEILING", 10),
		MaxServiceHits:   intEnv("MAX_SERVICE_HITS", 3),
		BoundingBoxLimit: intEnv("BOUNDING_BOX_LIMIT", 200),
	}

	// Basic validation for required fields
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("smtp configuration is incomplete")
	}
	if len(cfg.SearchRadii) == 0 {
		return nil, fmt.Errorf("at least one search radius is required")
	}
	return cfg, nil
}

func parseRadii(raw string) ([]float64, error) {
	var radii []float64
	for _, part := range strings.Split(raw, ",") {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		if val <= 0 {
			return nil, fmt.Errorf("radius must be positive, got %v", val)
		}
		radii = append(radii, val)
	}
	return radii, nil
}

func intEnv(key string, fallback int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if env := os.Getenv(key); env != "" {
		if val, err := time.ParseDuration(env); err == nil {
			return val
		}
	}
	return fallback
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
