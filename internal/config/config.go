package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by SEMPROVE_ENV (default .env) and then its
// .secret sidecar. Neither file has to exist. Variables already set in the
// environment win.
func Load() error {
	envFile := os.Getenv("SEMPROVE_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")
	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// StoreDriver is "sqlite" (default) or "postgres".
func StoreDriver() string {
	return stringOr("STORE_DRIVER", "sqlite")
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func SQLitePath() string {
	return stringOr("SQLITE_PATH", "database/default.sqlite")
}

// TemplatesPath is the YAML template lexicon.
func TemplatesPath() string {
	return stringOr("TEMPLATES_PATH", "templates/semantic_templates.yaml")
}

// DerivationsDir holds pre-parsed <sentence id>.xml files. It is used when
// PARSER_COMMAND is empty.
func DerivationsDir() string {
	return stringOr("DERIVATIONS_DIR", "derivations")
}

func ParserCommand() string {
	return os.Getenv("PARSER_COMMAND")
}

func ParserTimeout() time.Duration {
	return durationOr("PARSER_TIMEOUT", 300*time.Second)
}

// ParserCacheTTL is how long parsed derivations are reused. Zero disables
// the cache.
func ParserCacheTTL() time.Duration {
	return durationOr("PARSER_CACHE_TTL", 30*time.Minute)
}

// ProverBackend is "command" (default) or "datalog".
func ProverBackend() string {
	return stringOr("PROVER_BACKEND", "command")
}

func ProverCommand() string {
	return os.Getenv("PROVER_COMMAND")
}

func ProverTimeout() time.Duration {
	return durationOr("PROVER_TIMEOUT", 100*time.Second)
}

// NBest is the number of derivations composed per sentence. 0 means all.
func NBest() int {
	n, err := strconv.Atoi(os.Getenv("NBEST"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func ComposeWorkers() int {
	n, err := strconv.Atoi(os.Getenv("COMPOSE_WORKERS"))
	if err != nil || n <= 0 {
		return 4
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	return stringOr("LOG_LEVEL", "info")
}

func stringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// durationOr accepts Go durations ("90s") and bare seconds ("90").
func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
