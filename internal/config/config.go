package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string

	// HTTP
	Addr           string
	Origins        []string
	RequestTimeout time.Duration

	// DB
	DatabaseType        string
	DatabaseURL         string
	DatabaseSynchronize bool
	DatabaseLogSQL      bool

	// Tokens
	JWTSecret     string
	JWTAudience   string
	JWTIssuer     string
	JWTTTL        time.Duration
	JWTRefreshTTL time.Duration
	BcryptCost    int

	// Throttle: Limit requests per TTL window, then Block.
	ThrottleLimit int
	ThrottleTTL   time.Duration
	ThrottleBlock time.Duration

	// Pictures
	PicturesBackend string
	PicturesDir     string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
}

func (c Config) IsProduction() bool { return c.Environment == "production" }

// CORSOrigins returns the allowed origins. Production requires explicit
// origins in ORIGIN; the "*" wildcard is only accepted elsewhere.
func (c Config) CORSOrigins() ([]string, error) {
	if !c.IsProduction() {
		if len(c.Origins) == 0 {
			return []string{"*"}, nil
		}
		return c.Origins, nil
	}
	if len(c.Origins) == 0 {
		return nil, errors.New("ORIGIN must list allowed origins in production")
	}
	for _, o := range c.Origins {
		if o == "*" {
			return nil, errors.New("ORIGIN must not be * in production")
		}
	}
	return c.Origins, nil
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	return Config{
		Environment: getenv("ENVIRONMENT", getenv("NODE_ENV", "dev")),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		Addr:           getenv("ADDR", ":"+getenv("PORT", "3000")),
		Origins:        splitList(getenv("ORIGIN", "*")),
		RequestTimeout: getdur("REQUEST_TIMEOUT", 30*time.Second),

		DatabaseType:        getenv("DATABASE_TYPE", "postgres"),
		DatabaseURL:         databaseURL(),
		DatabaseSynchronize: getbool("DATABASE_SYNCHRONIZE", false),
		DatabaseLogSQL:      getbool("DATABASE_LOG_SQL", false),

		JWTSecret:     must("JWT_SECRET"),
		JWTAudience:   getenv("JWT_TOKEN_AUDIENCE", "nexus-api"),
		JWTIssuer:     getenv("JWT_TOKEN_ISSUER", "nexus-api"),
		JWTTTL:        getdur("JWT_TTL", time.Hour),
		JWTRefreshTTL: getdur("JWT_REFRESH_TTL", 24*time.Hour),
		BcryptCost:    getint("BCRYPT_COST", 10),

		ThrottleLimit: getint("THROTTLE_LIMIT", 10),
		ThrottleTTL:   getdur("THROTTLE_TTL", 10*time.Second),
		ThrottleBlock: getdur("THROTTLE_BLOCK", 5*time.Second),

		PicturesBackend: getenv("PICTURES_BACKEND", "local"),
		PicturesDir:     getenv("PICTURES_DIR", "pictures"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        getenv("S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a postgres DSN
// from the DATABASE_HOST/PORT/USERNAME/PASSWORD/DATABASE variables.
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("DATABASE_USERNAME", "postgres"), getenv("DATABASE_PASSWORD", "postgres")),
		Host:     fmt.Sprintf("%s:%d", getenv("DATABASE_HOST", "localhost"), getint("DATABASE_PORT", 5432)),
		Path:     "/" + getenv("DATABASE_DATABASE", "nexus"),
		RawQuery: "sslmode=" + getenv("DATABASE_SSLMODE", "disable"),
	}
	return u.String()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid bool, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid int, using default", "key", k, "value", v, "default", def)
	}
	return def
}

// getdur accepts Go durations ("15m") and bare integers, which are read as seconds.
func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("missing required env", "key", k)
		os.Exit(1)
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
