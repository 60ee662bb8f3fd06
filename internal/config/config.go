package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBDriver      string
	DBAutoMigrate bool

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret        string
	AdminSessionTTL  time.Duration
	AdminEmail       string
	AdminPassword    string
	LoginRateLimit   int
	LoginRateWindow  time.Duration
	WebhookSecret    string
	CORSAllowOrigins []string
	TrustedProxies   []string

	GCSBucket          string
	GCSCredentialsFile string
	GCSEmulatorHost    string
	SignedURLTTL       time.Duration

	SendgridAPIKey string
	MailFromEmail  string
	MailFromName   string

	DonationCampaignID    string
	SponsorshipCampaignID string
	DonationWidgetURL     string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads the environment, after merging an optional .env file from the working directory.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		AppEnv:        strings.ToLower(getenv("APP_ENV", "development")),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBAutoMigrate: getbool("DB_AUTO_MIGRATE", false),
		MySQLHost:     getenv("MYSQL_HOST", "mysql"),
		MySQLPort:     getenv("MYSQL_PORT", "3306"),
		MySQLDB:       getenv("MYSQL_DB", "school"),
		MySQLUser:     getenv("MYSQL_USER", "school"),
		MySQLPass:     getenv("MYSQL_PASS", "school"),
		PostgresDSN:   getenv("POSTGRES_DSN", os.Getenv("DATABASE_URL")),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 86400),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminSessionTTL: time.Duration(getint("ADMIN_SESSION_TTL_MINUTES", 12*60)) * time.Minute,
		AdminEmail:      strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		LoginRateLimit:  getint("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Duration(getint("LOGIN_RATE_WINDOW_SECONDS", 15*60)) * time.Second,
		WebhookSecret:   os.Getenv("WEBHOOK_SECRET"),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
		GCSEmulatorHost:    os.Getenv("STORAGE_EMULATOR_HOST"),
		SignedURLTTL:       time.Duration(getint("SIGNED_URL_TTL_HOURS", 365*24)) * time.Hour,

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFromEmail:  getenv("MAIL_FROM_EMAIL", "noreply@localhost"),
		MailFromName:   getenv("MAIL_FROM_NAME", "Careers"),

		DonationCampaignID:    os.Getenv("DONATION_CAMPAIGN_ID"),
		SponsorshipCampaignID: os.Getenv("SPONSORSHIP_CAMPAIGN_ID"),
		DonationWidgetURL:     os.Getenv("DONATION_WIDGET_URL"),
	}
	for _, o := range strings.Split(getenv("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.CORSAllowOrigins = append(c.CORSAllowOrigins, o)
		}
	}
	for _, p := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			c.TrustedProxies = append(c.TrustedProxies, p)
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres)", c.DBDriver)
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.WebhookSecret == "" {
		return errors.New("missing WEBHOOK_SECRET")
	}
	if c.GCSBucket == "" {
		return errors.New("missing GCS_BUCKET")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	for _, p := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", p, err)
		}
	}
	if c.AdminSessionTTL <= 0 || c.SignedURLTTL <= 0 {
		return errors.New("session and signed url lifetimes must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" || c.AppEnv == "prod" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME scanning into time.Time
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.PostgresDSN
	}
	return c.MySQLDSN()
}
