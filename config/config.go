package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	// board geometry
	MaxCourts int // default 8
	MaxRounds int // default 4

	// bcrypt hash of the shared board access code
	BoardAccessCodeHash string

	// optional Cloudflare R2 archive target; archiving is skipped when
	// AccountID is empty
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; not having one is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	accessCodeHash := os.Getenv("BOARD_ACCESS_CODE_HASH")
	if accessCodeHash == "" {
		return nil, fmt.Errorf("BOARD_ACCESS_CODE_HASH environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	maxCourts, err := intEnv("MAX_COURTS", 8)
	if err != nil {
		return nil, err
	}
	if maxCourts < 1 {
		return nil, fmt.Errorf("MAX_COURTS must be positive, got %d", maxCourts)
	}

	maxRounds, err := intEnv("MAX_ROUNDS", 4)
	if err != nil {
		return nil, err
	}
	if maxRounds < 1 {
		return nil, fmt.Errorf("MAX_ROUNDS must be positive, got %d", maxRounds)
	}

	return &Config{
		DatabaseURL:         dbURL,
		JWTSecretKey:        jwtKey,
		ServerPort:          port,
		MaxCourts:           maxCourts,
		MaxRounds:           maxRounds,
		BoardAccessCodeHash: accessCodeHash,
		R2AccountID:         os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:       os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:   os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:     os.Getenv("R2_PUBLIC_BASE_URL"),
	}, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return value, nil
}
