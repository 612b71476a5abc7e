package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time resolves the application timezone
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations,
// costs and job hours.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	Timezone *time.Location // timezone all calendar math runs in

	DecayHour          int          // hour of day the health decay sweep runs
	RescheduleHour     int          // hour of day the skipped-workout scan runs
	CleanupWeekday     time.Weekday // day the reschedule cleanup runs
	CleanupHour        int          // hour the reschedule cleanup runs
	OutboxPollInterval time.Duration
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Job timing and
// timezone have sensible defaults so only the core variables are required.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),  // environment (dev/test/prod)
		Port:           must("APP_PORT"), // port to bind the HTTP server
		DBUser:         must("DB_USER"),  // database user
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		Timezone: loadTimezone(),

		DecayHour:          envInt("DECAY_JOB_HOUR", 0),      // midnight
		RescheduleHour:     envInt("RESCHEDULE_JOB_HOUR", 1), // after decay
		CleanupWeekday:     time.Weekday(envInt("CLEANUP_JOB_WEEKDAY", 0)),
		CleanupHour:        envInt("CLEANUP_JOB_HOUR", 2),
		OutboxPollInterval: envDur("OUTBOX_POLL_INTERVAL", 5*time.Second),
	}
}

// IsProd reports whether the application runs in the production
// environment.  Debug-only surfaces such as the fake clock endpoints
// are disabled when true.
func (c Config) IsProd() bool { return c.Env == "prod" }

// loadTimezone resolves APP_TIMEZONE (IANA name, default UTC).  An
// unknown name is fatal: silently falling back would shift every
// streak and decay boundary.
func loadTimezone() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", name, err)
	}
	return loc
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
