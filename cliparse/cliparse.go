// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	BoothID          string
	RosterFile       string
	DatabaseURL      string
	DatabaseType     string
	ScanDelay        time.Duration
	ChallengeTimeout time.Duration
	MatchRate        float64
	AlertTTL         time.Duration
	VoterRefSalt     string
}

// Defaults
const (
	DefaultPort             = 3318
	DefaultBoothID          = "247-A"
	DefaultDatabaseType     = "sqlite"
	DefaultSQLiteURL        = ":memory:"
	DefaultScanDelay        = 2 * time.Second
	DefaultChallengeTimeout = 30 * time.Second
	DefaultMatchRate        = 0.85
	DefaultAlertTTL         = 5 * time.Second
)

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Env file to load (ignored if missing)")

	// Network and booth config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.BoothID, "booth", "", "Booth identifier")
	fs.StringVar(&cfg.RosterFile, "roster", "", "Roster file (.yaml or .json); demo roster if empty")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Journal database type (sqlite or postgres)")

	// Scanner behaviour
	fs.DurationVar(&cfg.ScanDelay, "scan-delay", 0, "Simulated scan delay")
	fs.DurationVar(&cfg.ChallengeTimeout, "challenge-timeout", 0, "Biometric challenge timeout")
	fs.Float64Var(&cfg.MatchRate, "match-rate", 0, "Simulated match rate (0-1)")
	fs.DurationVar(&cfg.AlertTTL, "alert-ttl", 0, "How long alerts stay on screen")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterRefSalt, "ref-salt", "", "Voter reference salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if !set["p"] {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.BoothID == "" {
		cfg.BoothID = envOr("BOOTH_ID", DefaultBoothID)
	}
	if cfg.RosterFile == "" {
		cfg.RosterFile = os.Getenv("ROSTER_FILE")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", DefaultDatabaseType)
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	var err error
	if !set["scan-delay"] {
		if cfg.ScanDelay, err = envDuration("SCAN_DELAY", DefaultScanDelay); err != nil {
			return Config{}, err
		}
	}
	if !set["challenge-timeout"] {
		if cfg.ChallengeTimeout, err = envDuration("CHALLENGE_TIMEOUT", DefaultChallengeTimeout); err != nil {
			return Config{}, err
		}
	}
	if !set["alert-ttl"] {
		if cfg.AlertTTL, err = envDuration("ALERT_TTL", DefaultAlertTTL); err != nil {
			return Config{}, err
		}
	}
	if !set["match-rate"] {
		cfg.MatchRate = DefaultMatchRate
		if rateStr := os.Getenv("MATCH_RATE"); rateStr != "" {
			rate, err := strconv.ParseFloat(rateStr, 64)
			if err != nil {
				return Config{}, errors.New("invalid MATCH_RATE env variable")
			}
			cfg.MatchRate = rate
		}
	}

	if cfg.ScanDelay < 0 {
		return Config{}, errors.New("scan delay cannot be negative")
	}
	if cfg.ChallengeTimeout <= 0 {
		return Config{}, errors.New("challenge timeout must be positive")
	}
	if cfg.AlertTTL <= 0 {
		return Config{}, errors.New("alert TTL must be positive")
	}
	if cfg.MatchRate < 0 || cfg.MatchRate > 1 {
		return Config{}, errors.New("match rate must be between 0 and 1")
	}

	// Secrets - MUST be provided
	if cfg.VoterRefSalt == "" {
		cfg.VoterRefSalt = os.Getenv("VOTER_REF_SALT")
	}
	if cfg.VoterRefSalt == "" {
		return Config{}, errors.New("VOTER_REF_SALT required")
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding the real environment
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}
